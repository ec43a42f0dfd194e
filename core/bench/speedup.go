// Package bench measures how run time scales with the number of workers.
package bench

import (
	"context"
	"time"

	apperrors "github.com/eliaswen/goat/core/errors"
	"github.com/eliaswen/goat/core/simulation"
	"github.com/eliaswen/goat/core/statistics"
	"github.com/eliaswen/goat/core/utils"
)

// DefaultWorkerCounts are the thread counts measured when none are given.
var DefaultWorkerCounts = []int{1, 2, 4, 8}

// Runner runs one simulation.
type Runner interface {
	Run(ctx context.Context, cfg simulation.Config) (*simulation.Report, error)
}

// Result describes the runs made with one worker count.
type Result struct {
	Workers       int                        `json:"workers"`
	Durations     statistics.DurationSummary `json:"durations"`
	Speedup       float64                    `json:"speedup"`
	StayPercent   float64                    `json:"stay_percent"`
	SwitchPercent float64                    `json:"switch_percent"`
}

// Speedup runs base with each worker count repeats times. Speedup is the
// mean duration of the first worker count divided by the mean of each.
func Speedup(ctx context.Context, runner Runner, base simulation.Config, workerCounts []int, repeats int) ([]Result, error) {
	if len(workerCounts) == 0 {
		workerCounts = DefaultWorkerCounts
	}
	if repeats <= 0 {
		return nil, apperrors.InvalidArgument("repeats must be positive, got %d", repeats)
	}

	results := make([]Result, 0, len(workerCounts))
	for _, workers := range workerCounts {
		cfg := base
		cfg.Workers = workers

		var (
			durations        = make([]time.Duration, 0, repeats)
			stay, switchWins int64
		)
		for i := 0; i < repeats; i++ {
			report, err := runner.Run(ctx, cfg)
			if err != nil {
				return results, apperrors.Wrapf(err, "speedup run with %d workers", workers)
			}
			durations = append(durations, report.Elapsed)
			stay += report.StayWins
			switchWins += report.SwitchWins
		}

		summary, err := statistics.SummarizeDurations(durations)
		if err != nil {
			return results, apperrors.Wrap(err, "summarising durations")
		}
		total := cfg.Iterations * int64(repeats)
		results = append(results, Result{
			Workers:       workers,
			Durations:     summary,
			StayPercent:   utils.Percent(stay, total),
			SwitchPercent: utils.Percent(switchWins, total),
		})
	}

	baseline := results[0].Durations.Mean
	for i := range results {
		if results[i].Durations.Mean > 0 {
			results[i].Speedup = baseline / results[i].Durations.Mean
		}
	}
	return results, nil
}
