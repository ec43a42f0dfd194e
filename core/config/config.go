package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/eliaswen/goat/core/dsl"
	apperrors "github.com/eliaswen/goat/core/errors"
	"github.com/eliaswen/goat/core/simulation"
)

const envPrefix = "GOAT_"

// Configuration keys.
const (
	KeyIterations    = "simulation.iterations"
	KeyThreads       = "simulation.threads"
	KeyYes           = "simulation.yes"
	KeyInterval      = "monitor.interval"
	KeyLogLevel      = "log.level"
	KeyRepeat        = "bench.repeat"
	KeyServerAddress = "server.address"
	KeyMaxIterations = "server.maxiterations"
	KeyMaxThreads    = "server.maxthreads"
)

// Load builds the configuration from, in increasing priority: defaults,
// the given .env files, GOAT_* environment variables and overrides.
// Missing .env files are ignored. The iteration and thread counts have no
// default so callers can tell whether they were supplied.
func Load(overrides map[string]interface{}, envFiles ...string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// Default configuration
	defaultConfig := map[string]interface{}{
		KeyYes:           false,
		KeyInterval:      simulation.DefaultMonitorInterval.String(),
		KeyLogLevel:      "info",
		KeyRepeat:        3,
		KeyServerAddress: ":8080",
		KeyMaxIterations: 100_000_000,
		KeyMaxThreads:    64,
	}
	if err := k.Load(confmap.Provider(defaultConfig, "."), nil); err != nil {
		return nil, apperrors.Wrap(err, "loading defaults")
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrapf(err, "loading %s", f)
		}
	}

	// Load from environment variables
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "loading environment")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, apperrors.Wrap(err, "loading overrides")
		}
	}

	if err := validate(k); err != nil {
		return nil, err
	}
	return k, nil
}

func validate(k *koanf.Koanf) error {
	if k.Duration(KeyInterval) <= 0 {
		return apperrors.ConfigInvalid("monitor.interval must be a positive duration")
	}
	if k.Int(KeyRepeat) <= 0 {
		return apperrors.ConfigInvalid("bench.repeat must be positive")
	}
	if k.Int64(KeyMaxIterations) < 0 {
		return apperrors.ConfigInvalid("server.maxiterations must not be negative")
	}
	if k.Int(KeyMaxThreads) <= 0 || k.Int(KeyMaxThreads) > simulation.MaxWorkers {
		return apperrors.ConfigInvalid("server.maxthreads out of range")
	}
	return nil
}

// Simulation describes which run parameters the configuration supplies.
type Simulation struct {
	Config        simulation.Config
	IterationsSet bool
	ThreadsSet    bool
}

// SimulationConfig extracts the run parameters. Iterations may be written
// as a count expression, e.g. GOAT_SIMULATION_ITERATIONS=5m.
func SimulationConfig(k *koanf.Koanf) (Simulation, error) {
	s := Simulation{
		Config: simulation.Config{
			Workers:         k.Int(KeyThreads),
			SkipConfirm:     k.Bool(KeyYes),
			MonitorInterval: k.Duration(KeyInterval),
		},
		IterationsSet: k.Exists(KeyIterations),
		ThreadsSet:    k.Exists(KeyThreads),
	}

	if s.IterationsSet {
		n, err := dsl.ParseCount(k.String(KeyIterations))
		if err != nil {
			return s, apperrors.WithCode(apperrors.CodeConfigInvalid, err)
		}
		s.Config.Iterations = n
	}
	if s.ThreadsSet && s.Config.Workers <= 0 {
		return s, apperrors.ConfigInvalid("simulation.threads must be positive")
	}
	return s, nil
}
