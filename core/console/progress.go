package console

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/eliaswen/goat/core/simulation"
	"github.com/eliaswen/goat/core/utils"
)

const progressTemplate = `{{string . "line"}}`

// FormatProgress renders one monitor sample as a single line.
func FormatProgress(p simulation.Progress) string {
	return fmt.Sprintf("Progress: %s / %s (%.2f%%) | Stay Wins: %s (%.2f%%) | Switch Wins: %s (%.2f%%) | Time per million: %.2f ms",
		utils.FormatNumber(p.Done), utils.FormatNumber(p.Total), p.PercentDone,
		utils.FormatNumber(p.StayWins), p.StayPercent,
		utils.FormatNumber(p.SwitchWins), p.SwitchPercent,
		p.MsPerMillion)
}

// ProgressBar is a simulation.ProgressReporter that redraws the progress
// line in place. The bar is static: it only renders when a sample arrives,
// and every frame starts with a carriage return whether or not the output
// is a terminal.
type ProgressBar struct {
	bar *pb.ProgressBar
}

func NewProgressBar(w io.Writer, total int64) *ProgressBar {
	bar := pb.New64(total)
	bar.SetWriter(w)
	bar.SetTemplateString(progressTemplate)
	bar.Set(pb.Static, true)
	bar.Set(pb.ReturnSymbol, "\r")
	bar.Start()
	return &ProgressBar{bar: bar}
}

func (b *ProgressBar) Report(p simulation.Progress) {
	b.bar.SetCurrent(p.Done)
	b.bar.Set("line", FormatProgress(p))
	b.bar.Write()
}

// Finish draws the last sample and ends the line.
func (b *ProgressBar) Finish() error {
	b.bar.Finish()
	// A finished bar terminates its frame with a newline.
	b.bar.Write()
	return b.bar.Err()
}
