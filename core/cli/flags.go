// Package cli turns command-line arguments into a simulation run.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/eliaswen/goat/core/config"
	"github.com/eliaswen/goat/core/dsl"
	apperrors "github.com/eliaswen/goat/core/errors"
)

// Options holds the parsed command line. Only flags that were given end up
// in Overrides.
type Options struct {
	Iterations int64
	Threads    int
	Yes        bool
	Interval   time.Duration
	LogLevel   string
	Speedup    bool
	Repeat     int

	set map[string]bool
}

// countFlag writes a scaled trial count into a shared target so the last of
// -i, -im and -ib on the command line wins.
type countFlag struct {
	target *int64
	scale  int64
	expr   bool
}

func (f countFlag) String() string {
	if f.target == nil {
		return "0"
	}
	return strconv.FormatInt(*f.target, 10)
}

func (f countFlag) Set(s string) error {
	var (
		n   int64
		err error
	)
	if f.expr {
		n, err = dsl.ParseCount(s)
	} else {
		n, err = strconv.ParseInt(s, 10, 64)
		if err == nil {
			n, err = dsl.Scale(n, f.scale)
		}
	}
	if err != nil {
		return fmt.Errorf("invalid count %q", s)
	}
	*f.target = n
	return nil
}

type threadsFlag struct{ target *int }

func (f threadsFlag) String() string {
	if f.target == nil {
		return "0"
	}
	return strconv.Itoa(*f.target)
}

func (f threadsFlag) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid thread count %q: must be a positive integer", s)
	}
	*f.target = n
	return nil
}

// flag names mapped to the configuration key they set.
var flagKeys = map[string]string{
	"t":                   config.KeyThreads,
	"threads":             config.KeyThreads,
	"i":                   config.KeyIterations,
	"iterations":          config.KeyIterations,
	"im":                  config.KeyIterations,
	"iterations-millions": config.KeyIterations,
	"ib":                  config.KeyIterations,
	"iterations-billions": config.KeyIterations,
	"y":                   config.KeyYes,
	"yes":                 config.KeyYes,
	"interval":            config.KeyInterval,
	"log-level":           config.KeyLogLevel,
	"repeat":              config.KeyRepeat,
}

func newFlagSet(opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet("goat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	threads := threadsFlag{target: &opts.Threads}
	fs.Var(threads, "t", "number of worker threads")
	fs.Var(threads, "threads", "number of worker threads")

	fs.Var(countFlag{target: &opts.Iterations, scale: 1, expr: true}, "i", "number of iterations (accepts 5m, 1_000_000)")
	fs.Var(countFlag{target: &opts.Iterations, scale: 1, expr: true}, "iterations", "number of iterations (accepts 5m, 1_000_000)")
	fs.Var(countFlag{target: &opts.Iterations, scale: 1_000_000}, "im", "number of iterations in millions")
	fs.Var(countFlag{target: &opts.Iterations, scale: 1_000_000}, "iterations-millions", "number of iterations in millions")
	fs.Var(countFlag{target: &opts.Iterations, scale: 1_000_000_000}, "ib", "number of iterations in billions")
	fs.Var(countFlag{target: &opts.Iterations, scale: 1_000_000_000}, "iterations-billions", "number of iterations in billions")

	fs.BoolVar(&opts.Yes, "y", false, "skip the confirmation prompt")
	fs.BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")

	fs.DurationVar(&opts.Interval, "interval", 0, "progress refresh interval")
	fs.StringVar(&opts.LogLevel, "log-level", "", "log level: error, warn, info or debug")
	fs.BoolVar(&opts.Speedup, "speedup", false, "measure speedup over 1, 2, 4 and 8 threads")
	fs.IntVar(&opts.Repeat, "repeat", 0, "runs per thread count with --speedup")
	return fs
}

// Parse parses args (without the program name). Errors carry
// CodeInvalidArgument; -h and --help return an error wrapping flag.ErrHelp.
func Parse(args []string) (*Options, error) {
	opts := &Options{set: map[string]bool{}}
	fs := newFlagSet(opts)

	if err := fs.Parse(args); err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidArgument, err)
	}
	if fs.NArg() > 0 {
		return nil, apperrors.InvalidArgument("unknown argument: %s", fs.Arg(0))
	}

	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

// Overrides returns the configuration values given on the command line.
func (o *Options) Overrides() map[string]interface{} {
	values := map[string]interface{}{
		config.KeyThreads:    o.Threads,
		config.KeyIterations: o.Iterations,
		config.KeyYes:        o.Yes,
		config.KeyInterval:   o.Interval.String(),
		config.KeyLogLevel:   o.LogLevel,
		config.KeyRepeat:     o.Repeat,
	}

	overrides := map[string]interface{}{}
	for name := range o.set {
		if key, ok := flagKeys[name]; ok {
			overrides[key] = values[key]
		}
	}
	return overrides
}

// Usage writes the flag summary to w.
func Usage(w io.Writer) {
	fs := newFlagSet(&Options{})
	fmt.Fprintf(w, "usage: goat [-t threads] [-i n | -im millions | -ib billions] [-y]\n\nOptions:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
