package console

import (
	"fmt"
	"io"

	"github.com/eliaswen/goat/core/bench"
	"github.com/eliaswen/goat/core/simulation"
	"github.com/eliaswen/goat/core/statistics"
	"github.com/eliaswen/goat/core/utils"
)

// PrintReport writes the final summary of a run.
func PrintReport(w io.Writer, r *simulation.Report, s *statistics.Result) {
	fmt.Fprintf(w, "\n\nSimulation complete!\n")
	fmt.Fprintf(w, "Total iterations: %s\n", utils.FormatNumber(r.Iterations))
	fmt.Fprintf(w, "Threads: %d\n", r.Workers)
	fmt.Fprintf(w, "Stay Wins: %s (%.2f%%)\n", utils.FormatNumber(r.StayWins), r.StayPercent())
	fmt.Fprintf(w, "Switch Wins: %s (%.2f%%)\n", utils.FormatNumber(r.SwitchWins), r.SwitchPercent())
	fmt.Fprintf(w, "Total time: %d ms\n", r.ElapsedMs())
	fmt.Fprintf(w, "Average time per million iterations: %.2f ms\n", r.MsPerMillion)

	if s == nil || s.Trials == 0 {
		return
	}
	fmt.Fprintf(w, "\n%.0f%% confidence intervals (Wilson score):\n", 100*s.Confidence)
	printProportion(w, "Stay", s.Stay)
	printProportion(w, "Switch", s.Switch)
}

func printProportion(w io.Writer, name string, p statistics.Proportion) {
	verdict := "consistent with"
	if !p.Contains() {
		verdict = "deviates from"
	}
	fmt.Fprintf(w, "  %-7s [%.6f, %.6f] %s %.6f (z=%.2f, p=%.4f)\n",
		name+":", p.Lower, p.Upper, verdict, p.Expected, p.ZScore, p.PValue)
}

// PrintSpeedup writes one line per thread count of a speedup experiment.
func PrintSpeedup(w io.Writer, results []bench.Result) {
	fmt.Fprintf(w, "\nSpeedup analysis:\n")
	for _, r := range results {
		fmt.Fprintf(w, "Threads: %d\tMean: %.2f ms\tMedian: %.2f ms\tStdDev: %.2f ms\tSpeedup: %.2f\tStay: %.2f%%\tSwitch: %.2f%%\n",
			r.Workers, r.Durations.Mean, r.Durations.Median, r.Durations.StdDev, r.Speedup, r.StayPercent, r.SwitchPercent)
	}
}
