package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/eliaswen/goat/core/bench"
	"github.com/eliaswen/goat/core/config"
	"github.com/eliaswen/goat/core/console"
	apperrors "github.com/eliaswen/goat/core/errors"
	"github.com/eliaswen/goat/core/logging"
	"github.com/eliaswen/goat/core/simulation"
	"github.com/eliaswen/goat/core/statistics"
)

// Streams are the standard streams of the process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes the command line and returns the process exit code.
// envFiles is passed through to config.Load.
func Run(ctx context.Context, args []string, streams Streams, envFiles ...string) int {
	opts, err := Parse(args)
	if apperrors.Is(err, flag.ErrHelp) {
		Usage(streams.Out)
		return 0
	}
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 1
	}

	k, err := config.Load(opts.Overrides(), envFiles...)
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 1
	}
	logger := logging.New(streams.Err, logging.ParseLevel(k.String(config.KeyLogLevel)))

	sim, err := config.SimulationConfig(k)
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 1
	}

	cfg, err := complete(sim, console.NewPrompter(streams.In, streams.Out))
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 1
	}

	if opts.Speedup {
		return runSpeedup(ctx, cfg, k.Int(config.KeyRepeat), logger, streams)
	}
	return runSimulation(ctx, cfg, logger, streams)
}

// complete prompts for whatever the flags and environment left out, then
// asks for confirmation unless it was skipped.
func complete(sim config.Simulation, p *console.Prompter) (simulation.Config, error) {
	cfg := sim.Config
	if !sim.IterationsSet {
		n, err := p.Count("Enter the number of iterations to run: ", 0)
		if err != nil {
			return cfg, err
		}
		cfg.Iterations = n
	}
	if !sim.ThreadsSet {
		n, err := p.Threads("Enter the number of threads to run: ", simulation.MaxWorkers)
		if err != nil {
			return cfg, err
		}
		cfg.Workers = n
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if !cfg.SkipConfirm {
		if err := p.Confirm(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func runSimulation(ctx context.Context, cfg simulation.Config, logger *logging.Logger, streams Streams) int {
	opts := []simulation.Option{simulation.WithLogger(logger)}

	var bar *console.ProgressBar
	if cfg.Iterations > 0 {
		bar = console.NewProgressBar(streams.Out, cfg.Iterations)
		opts = append(opts, simulation.WithReporter(bar))
	}

	report, err := simulation.NewCoordinator(opts...).Run(ctx, cfg)
	if bar != nil {
		if ferr := bar.Finish(); ferr != nil {
			logger.Warn("progress display: %v", ferr)
		}
	}
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 1
	}

	console.PrintReport(streams.Out, report, statistics.Summarize(report.StayWins, report.SwitchWins, report.Iterations))
	return 0
}

func runSpeedup(ctx context.Context, cfg simulation.Config, repeats int, logger *logging.Logger, streams Streams) int {
	coordinator := simulation.NewCoordinator(simulation.WithLogger(logger))

	fmt.Fprintf(streams.Out, "\nMeasuring %d iterations over %v threads, %d runs each...\n", cfg.Iterations, bench.DefaultWorkerCounts, repeats)
	results, err := bench.Speedup(ctx, coordinator, cfg, bench.DefaultWorkerCounts, repeats)
	if err != nil {
		fmt.Fprintf(streams.Err, "Error: %v\n", err)
		return 1
	}
	console.PrintSpeedup(streams.Out, results)
	return 0
}
