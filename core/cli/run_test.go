package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	out, err bytes.Buffer
}

func run(t *testing.T, input string, args ...string) (int, *captured) {
	t.Helper()
	c := &captured{}
	code := Run(context.Background(), args, Streams{
		In:  strings.NewReader(input),
		Out: &c.out,
		Err: &c.err,
	}, filepath.Join(t.TempDir(), "missing.env"))
	return code, c
}

func TestRunWithFlags(t *testing.T) {
	code, c := run(t, "", "-i", "200000", "-t", "4", "-y")

	assert.Equal(t, 0, code, c.err.String())
	assert.Contains(t, c.out.String(), "Simulation complete!")
	assert.Contains(t, c.out.String(), "Total iterations: 200 000")
	assert.Contains(t, c.out.String(), "Threads: 4")
	assert.NotContains(t, c.out.String(), "Enter the number")
}

func TestRunKeepsLogsOffProgressLine(t *testing.T) {
	var shared bytes.Buffer
	code := Run(context.Background(), []string{"-i", "5m", "-t", "2", "-y", "--interval", "1ms"}, Streams{
		In:  strings.NewReader(""),
		Out: &shared,
		Err: &shared,
	}, filepath.Join(t.TempDir(), "missing.env"))

	require.Equal(t, 0, code, shared.String())
	text := shared.String()
	assert.NotContains(t, text, "[INFO]")
	assert.NotContains(t, text, "[DEBUG]")

	// The progress line is closed before the report starts.
	last := strings.LastIndex(text, "Progress: ")
	require.NotEqual(t, -1, last)
	report := strings.Index(text, "Simulation complete!")
	require.Greater(t, report, last)
	tail := text[last:report]
	assert.Equal(t, 1, strings.Count(tail, "\n\n\n"))
	assert.NotContains(t, tail, "run ")
}

func TestRunPromptsForMissingValues(t *testing.T) {
	code, c := run(t, "ten\n5000\n0\n2\n\n")

	assert.Equal(t, 0, code, c.err.String())
	out := c.out.String()
	assert.Contains(t, out, "Enter the number of iterations to run: ")
	assert.Contains(t, out, "Invalid input. Please enter a non-negative integer: ")
	assert.Contains(t, out, "Enter the number of threads to run: ")
	assert.Contains(t, out, "Invalid input. Please enter a positive integer: ")
	assert.Contains(t, out, "Press Enter to confirm and start...")
	assert.Contains(t, out, "Total iterations: 5 000")
}

func TestRunThreadPromptRejectsScaledCounts(t *testing.T) {
	code, c := run(t, "100\n5k\n70000\n1\n\n")

	assert.Equal(t, 0, code, c.err.String())
	out := c.out.String()
	assert.Equal(t, 2, strings.Count(out, "Invalid input."))
	assert.Contains(t, out, "no greater than 65536")
	assert.Contains(t, out, "Threads: 1")
	assert.Empty(t, c.err.String())
}

func TestRunZeroIterations(t *testing.T) {
	code, c := run(t, "", "-i", "0", "-t", "3", "--yes")

	assert.Equal(t, 0, code, c.err.String())
	assert.Contains(t, c.out.String(), "Stay Wins: 0 (0.00%)")
	assert.NotContains(t, c.out.String(), "NaN")
	assert.NotContains(t, c.out.String(), "Progress:")
}

func TestRunArgumentErrors(t *testing.T) {
	tests := [][]string{
		{"--bogus"},
		{"-t"},
		{"-i", "many"},
		{"-t", "-2"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			code, c := run(t, "", args...)

			assert.Equal(t, 1, code)
			assert.Empty(t, c.out.String())
			assert.True(t, strings.HasPrefix(c.err.String(), "Error: "))
			assert.Equal(t, 1, strings.Count(c.err.String(), "\n"))
		})
	}
}

func TestRunConfirmationAborted(t *testing.T) {
	code, c := run(t, "", "-i", "100", "-t", "1")

	assert.Equal(t, 1, code)
	assert.Contains(t, c.err.String(), "confirmation aborted")
	assert.NotContains(t, c.out.String(), "Simulation complete!")
}

func TestRunHelp(t *testing.T) {
	code, c := run(t, "", "--help")

	assert.Equal(t, 0, code)
	assert.Contains(t, c.out.String(), "usage: goat")
}

func TestRunSpeedup(t *testing.T) {
	code, c := run(t, "", "-i", "20000", "-t", "1", "-y", "--speedup", "--repeat", "1")

	assert.Equal(t, 0, code, c.err.String())
	assert.Contains(t, c.out.String(), "Speedup analysis:")
	assert.Contains(t, c.out.String(), "Threads: 8")
}
