package simulation

import (
	"time"

	"github.com/eliaswen/goat/core/utils"
)

// Progress is one monitor sample.
type Progress struct {
	Total         int64
	Done          int64
	StayWins      int64
	SwitchWins    int64
	PercentDone   float64
	StayPercent   float64
	SwitchPercent float64
	// MsPerMillion is the throughput since the previous sample, 0 when
	// nothing completed in between.
	MsPerMillion float64
	Elapsed      time.Duration
}

// ProgressReporter receives monitor samples. Report is called from the
// monitor goroutine only, never concurrently with itself.
type ProgressReporter interface {
	Report(Progress)
}

// ReporterFunc adapts a function to ProgressReporter.
type ReporterFunc func(Progress)

func (f ReporterFunc) Report(p Progress) { f(p) }

// Discard drops every sample.
var Discard ProgressReporter = ReporterFunc(func(Progress) {})

type monitor struct {
	counters *Counters
	total    int64
	interval time.Duration
	reporter ProgressReporter
	now      func() time.Time

	start    time.Time
	lastDone int64
	lastTime time.Time
}

func newMonitor(counters *Counters, total int64, interval time.Duration, reporter ProgressReporter, now func() time.Time) *monitor {
	start := now()
	return &monitor{
		counters: counters,
		total:    total,
		interval: interval,
		reporter: reporter,
		now:      now,
		start:    start,
		lastTime: start,
	}
}

// run samples until the counters reach the total or stop is closed.
// It only loads the counters and never blocks the workers.
func (m *monitor) run(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		p, finished := m.sample()
		if finished {
			return
		}
		m.reporter.Report(p)

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (m *monitor) sample() (Progress, bool) {
	now := m.now()
	stay, switched := m.counters.Snapshot()
	if stay+switched >= m.total {
		return Progress{}, true
	}

	p := computeProgress(m.total, stay, switched, m.lastDone, now.Sub(m.lastTime), now.Sub(m.start))
	m.lastDone = p.Done
	m.lastTime = now
	return p, false
}

func computeProgress(total, stay, switched, lastDone int64, sinceLast, elapsed time.Duration) Progress {
	done := stay + switched
	p := Progress{
		Total:         total,
		Done:          done,
		StayWins:      stay,
		SwitchWins:    switched,
		PercentDone:   utils.Percent(done, total),
		StayPercent:   utils.Percent(stay, done),
		SwitchPercent: utils.Percent(switched, done),
		Elapsed:       elapsed,
	}
	if done > lastDone {
		p.MsPerMillion = utils.MsPerMillion(utils.Milliseconds(sinceLast), done-lastDone)
	}
	return p
}
