// Package simulation runs Monty Hall trials across parallel workers and
// monitors their progress.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/eliaswen/goat/core/errors"
	"github.com/eliaswen/goat/core/logging"
	"github.com/eliaswen/goat/core/montyhall"
	"github.com/eliaswen/goat/core/utils"
)

// cancelCheckMask sets how often a worker looks at its context: every 65536 trials.
const cancelCheckMask = 1<<16 - 1

// Coordinator owns the counters of a run and the lifecycle of its workers
// and monitor. A Coordinator may run several simulations, one after another
// or concurrently; runs share nothing.
type Coordinator struct {
	reporter ProgressReporter
	seeder   montyhall.Seeder
	log      *logging.Logger
	now      func() time.Time
}

type Option func(*Coordinator)

func WithReporter(r ProgressReporter) Option {
	return func(c *Coordinator) { c.reporter = r }
}

// WithSeeder sets the seed source of each worker's generator.
func WithSeeder(s montyhall.Seeder) Option {
	return func(c *Coordinator) { c.seeder = s }
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		reporter: Discard,
		seeder:   montyhall.EntropySeeder,
		log:      logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes cfg.Iterations trials on cfg.Workers goroutines. Workers are
// joined before the monitor is stopped, so the returned counts are final.
// Lifecycle events are logged at debug level only; the caller owns the
// terminal while the progress line is open.
// If a worker cannot seed its generator, or ctx is cancelled, the run is
// aborted and the partial report is returned alongside the error.
func (c *Coordinator) Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:      uuid.NewString(),
		Iterations: cfg.Iterations,
		Workers:    cfg.Workers,
		Assignment: Partition(cfg.Iterations, cfg.Workers),
	}
	if cfg.Iterations == 0 {
		c.log.Debug("run %s: no iterations requested", report.RunID)
		return report, nil
	}

	c.log.Debug("run %s: %d iterations on %d workers", report.RunID, cfg.Iterations, cfg.Workers)

	counters := &Counters{}
	start := c.now()

	stop := make(chan struct{})
	monitorDone := make(chan struct{})
	mon := newMonitor(counters, cfg.Iterations, cfg.interval(), c.reporter, c.now)
	go func() {
		defer close(monitorDone)
		mon.run(stop)
	}()

	g, gctx := errgroup.WithContext(ctx)
	for id, trials := range report.Assignment {
		g.Go(func() error {
			return c.work(gctx, id, trials, counters)
		})
	}
	err := g.Wait()

	close(stop)
	<-monitorDone

	report.Elapsed = c.now().Sub(start)
	report.StayWins, report.SwitchWins = counters.Snapshot()
	report.MsPerMillion = utils.MsPerMillion(utils.Milliseconds(report.Elapsed), cfg.Iterations)

	if err != nil {
		c.log.Debug("run %s aborted: %v", report.RunID, err)
		return report, apperrors.Wrapf(err, "run %s aborted", report.RunID)
	}

	c.log.Debug("run %s: finished in %s", report.RunID, utils.FormatDuration(report.Elapsed))
	return report, nil
}

func (c *Coordinator) work(ctx context.Context, id int, trials int64, counters *Counters) error {
	rng, err := montyhall.NewSource(c.seeder)
	if err != nil {
		return apperrors.WithCode(apperrors.CodeRNGInit, fmt.Errorf("worker %d: seeding generator: %w", id, err))
	}
	c.log.Debug("worker %d: %d trials", id, trials)

	for i := int64(0); i < trials; i++ {
		if i&cancelCheckMask == 0 && ctx.Err() != nil {
			return apperrors.WithCode(apperrors.CodeCancelled, ctx.Err())
		}
		counters.record(montyhall.RunTrial(rng))
	}
	return nil
}
