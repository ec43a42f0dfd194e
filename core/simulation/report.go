package simulation

import (
	"time"

	"github.com/eliaswen/goat/core/utils"
)

// Report is the final result of a run.
type Report struct {
	RunID        string        `json:"run_id"`
	Iterations   int64         `json:"iterations"`
	Workers      int           `json:"workers"`
	Assignment   []int64       `json:"assignment"`
	StayWins     int64         `json:"stay_wins"`
	SwitchWins   int64         `json:"switch_wins"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	MsPerMillion float64       `json:"ms_per_million"`
}

// StayPercent is the share of all iterations won by staying, 0 for an empty run.
func (r *Report) StayPercent() float64 {
	return utils.Percent(r.StayWins, r.Iterations)
}

func (r *Report) SwitchPercent() float64 {
	return utils.Percent(r.SwitchWins, r.Iterations)
}

func (r *Report) ElapsedMs() int64 {
	return r.Elapsed.Milliseconds()
}
