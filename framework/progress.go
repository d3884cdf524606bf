package framework

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressReporter shows the progress of a long-running probe. The zero value and nil
// both do nothing.
type ProgressReporter struct {
	bar *progressbar.ProgressBar
}

// NewProgressReporter returns a progress bar on stderr, or a no-op reporter if stderr is
// not a terminal so that logs captured in CI stay clean.
func NewProgressReporter(total int, description string) *ProgressReporter {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return &ProgressReporter{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &ProgressReporter{bar: bar}
}

// Set moves the bar to n completed items.
func (p *ProgressReporter) Set(n int) {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Set(n)
}

// Finish stops the bar where it is, even if the total was not reached.
func (p *ProgressReporter) Finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Exit()
}
