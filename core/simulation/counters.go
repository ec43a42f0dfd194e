package simulation

import "sync/atomic"

// Counters holds the win tallies shared by all workers and the monitor.
// Both values only ever increase.
type Counters struct {
	stay     atomic.Int64
	switched atomic.Int64
}

func (c *Counters) record(stayWins, switchWins bool) {
	if stayWins {
		c.stay.Add(1)
	}
	if switchWins {
		c.switched.Add(1)
	}
}

func (c *Counters) Stay() int64 {
	return c.stay.Load()
}

func (c *Counters) Switch() int64 {
	return c.switched.Load()
}

// Snapshot loads both counters. The two loads are not taken together;
// each value is a lower bound of the live count.
func (c *Counters) Snapshot() (stay, switched int64) {
	return c.stay.Load(), c.switched.Load()
}
