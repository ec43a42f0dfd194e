package simulation

import (
	"time"

	apperrors "github.com/eliaswen/goat/core/errors"
)

// DefaultMonitorInterval is how often the monitor samples the counters.
const DefaultMonitorInterval = 25 * time.Millisecond

// MaxWorkers bounds the number of worker goroutines of a single run.
const MaxWorkers = 1 << 16

// Config parameterises a run. It is not modified once Run starts.
type Config struct {
	Iterations      int64
	Workers         int
	SkipConfirm     bool
	MonitorInterval time.Duration
}

func (cfg Config) Validate() error {
	if cfg.Iterations < 0 {
		return apperrors.InvalidArgument("iterations must be non-negative, got %d", cfg.Iterations)
	}
	if cfg.Workers <= 0 {
		return apperrors.InvalidArgument("threads must be positive, got %d", cfg.Workers)
	}
	if cfg.Workers > MaxWorkers {
		return apperrors.InvalidArgument("threads must be at most %d, got %d", MaxWorkers, cfg.Workers)
	}
	if cfg.MonitorInterval < 0 {
		return apperrors.InvalidArgument("monitor interval must not be negative, got %s", cfg.MonitorInterval)
	}
	return nil
}

func (cfg Config) interval() time.Duration {
	if cfg.MonitorInterval <= 0 {
		return DefaultMonitorInterval
	}
	return cfg.MonitorInterval
}
