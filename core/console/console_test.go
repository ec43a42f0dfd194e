package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliaswen/goat/core/bench"
	apperrors "github.com/eliaswen/goat/core/errors"
	"github.com/eliaswen/goat/core/simulation"
	"github.com/eliaswen/goat/core/statistics"
)

func TestPrompterCount(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		min        int64
		want       int64
		wantRetry  int
		retryLabel string
	}{
		{name: "Valid first try", input: "1000\n", want: 1000},
		{name: "Count expression", input: "5m\n", want: 5_000_000},
		{name: "Zero allowed", input: "0\n", want: 0},
		{
			name:       "Retries on garbage",
			input:      "abc\n-3\n\n42\n",
			want:       42,
			wantRetry:  3,
			retryLabel: "non-negative integer",
		},
		{
			name:       "Positive required",
			input:      "0\n8\n",
			min:        1,
			want:       8,
			wantRetry:  1,
			retryLabel: "positive integer",
		},
		{name: "Last line without newline", input: "12", want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Count("Enter the number of iterations to run: ", tt.min)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "Enter the number of iterations to run: "))
			assert.Equal(t, tt.wantRetry, strings.Count(out.String(), "Invalid input."))
			if tt.retryLabel != "" {
				assert.Contains(t, out.String(), tt.retryLabel)
			}
		})
	}
}

func TestPrompterCountEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("nope\n"), &bytes.Buffer{})

	_, err := p.Count("threads: ", 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.GetCode(err))
}

func TestPrompterThreads(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      int
		wantRetry int
		wantCap   bool
	}{
		{name: "Plain integer", input: "8\n", want: 8},
		{name: "Scale suffix rejected", input: "5k\n4\n", want: 4, wantRetry: 1},
		{name: "Zero and negative rejected", input: "0\n-2\n3\n", want: 3, wantRetry: 2},
		{name: "Above cap re-prompts", input: "70000\n16\n", want: 16, wantRetry: 1, wantCap: true},
		{name: "Cap itself allowed", input: "64\n", want: 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)
			got, err := p.Threads("Enter the number of threads to run: ", 64)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRetry, strings.Count(out.String(), "Invalid input."))
			if tt.wantCap {
				assert.Contains(t, out.String(), "no greater than 64")
			}
		})
	}
}

func TestPrompterThreadsEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("100000"), &bytes.Buffer{})
	_, err := p.Threads("threads: ", 64)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.GetCode(err))
}

func TestPrompterConfirm(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("4\n\n"), &out)

	n, err := p.Count("threads: ", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, p.Confirm())
	assert.Contains(t, out.String(), "Press Enter to confirm and start...")

	assert.Error(t, p.Confirm())
}

func TestFormatProgress(t *testing.T) {
	line := FormatProgress(simulation.Progress{
		Total:         10_000_000,
		Done:          2_500_000,
		StayWins:      833_000,
		SwitchWins:    1_667_000,
		PercentDone:   25,
		StayPercent:   33.32,
		SwitchPercent: 66.68,
		MsPerMillion:  12.346,
	})

	assert.Equal(t, "Progress: 2 500 000 / 10 000 000 (25.00%) | Stay Wins: 833 000 (33.32%) | Switch Wins: 1 667 000 (66.68%) | Time per million: 12.35 ms", line)
}

func TestProgressBarRendersSamples(t *testing.T) {
	var out bytes.Buffer
	bar := NewProgressBar(&out, 100)
	bar.Report(simulation.Progress{Total: 100, Done: 10, StayWins: 3, SwitchWins: 7, PercentDone: 10, StayPercent: 30, SwitchPercent: 70})
	bar.Report(simulation.Progress{Total: 100, Done: 40, StayWins: 10, SwitchWins: 30, PercentDone: 40, StayPercent: 25, SwitchPercent: 75})
	require.NoError(t, bar.Finish())

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "\rProgress: "))
	assert.Contains(t, text, "ms\rProgress: 40 / 100 (40.00%)")
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.Equal(t, 1, strings.Count(text, "\n"))
}

func TestPrintReport(t *testing.T) {
	report := &simulation.Report{
		Iterations:   1_000_000,
		Workers:      4,
		StayWins:     333_400,
		SwitchWins:   666_600,
		Elapsed:      1500 * time.Millisecond,
		MsPerMillion: 1500,
	}
	var out bytes.Buffer
	PrintReport(&out, report, statistics.Summarize(report.StayWins, report.SwitchWins, report.Iterations))

	text := out.String()
	assert.Contains(t, text, "Simulation complete!")
	assert.Contains(t, text, "Total iterations: 1 000 000")
	assert.Contains(t, text, "Stay Wins: 333 400 (33.34%)")
	assert.Contains(t, text, "Switch Wins: 666 600 (66.66%)")
	assert.Contains(t, text, "Total time: 1500 ms")
	assert.Contains(t, text, "Average time per million iterations: 1500.00 ms")
	assert.Contains(t, text, "95% confidence intervals")
	assert.Contains(t, text, "consistent with 0.333333")
}

func TestPrintReportZeroIterations(t *testing.T) {
	report := &simulation.Report{Workers: 2}
	var out bytes.Buffer
	PrintReport(&out, report, statistics.Summarize(0, 0, 0))

	text := out.String()
	assert.Contains(t, text, "Stay Wins: 0 (0.00%)")
	assert.Contains(t, text, "Switch Wins: 0 (0.00%)")
	assert.NotContains(t, text, "NaN")
	assert.NotContains(t, text, "confidence")
}

func TestPrintSpeedup(t *testing.T) {
	var out bytes.Buffer
	PrintSpeedup(&out, []bench.Result{
		{Workers: 1, Durations: statistics.DurationSummary{Mean: 100}, Speedup: 1},
		{Workers: 2, Durations: statistics.DurationSummary{Mean: 50}, Speedup: 2},
	})

	assert.Contains(t, out.String(), "Speedup analysis:")
	assert.Contains(t, out.String(), "Threads: 2\tMean: 50.00 ms")
	assert.Contains(t, out.String(), "Speedup: 2.00")
}
