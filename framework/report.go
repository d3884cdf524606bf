package framework

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// DefaultMaxWarningsShown limits how many warnings PrintResults lists in detail.
const DefaultMaxWarningsShown = 10

const reportRule = "══════════════════════════════════════════════════════════════════════"

// ReportOptions controls PrintResults.
type ReportOptions struct {
	MaxWarningsShown int
	// ReproCommands optionally maps a failed test to a shell command that reproduces it.
	ReproCommands map[string]string
}

// PrintResults writes the final summary of a run: totals, pass rate, every failure, and a
// capped list of warnings.
func PrintResults(out io.Writer, results Results, opts ReportOptions) {
	maxWarnings := opts.MaxWarningsShown
	if maxWarnings <= 0 {
		maxWarnings = DefaultMaxWarningsShown
	}

	fmt.Fprintln(out, reportRule)
	fmt.Fprintln(out, "FINAL TEST REPORT")
	fmt.Fprintln(out, reportRule)
	fmt.Fprintf(out, "\nTotal Tests: %d\n", results.Total())
	fmt.Fprintln(out, color.GreenString("%s Passed:   %d", GlyphPassed, results.Passed()))
	fmt.Fprintln(out, color.YellowString("%s Warnings: %d", GlyphWarning, results.Warned()))
	fmt.Fprintln(out, color.RedString("%s Failed:   %d", GlyphFailed, results.Failed()))
	if len(results.Skipped) > 0 {
		fmt.Fprintf(out, "  Skipped:  %d\n", len(results.Skipped))
	}
	fmt.Fprintf(out, "\nPass Rate: %.1f%%\n", results.PassRate())
	if throttled := results.Throttled(); len(throttled) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, color.YellowString(
			"%s %d hard checks were downgraded to warnings because the service rate-limited them;",
			GlyphWarning, len(throttled)))
		fmt.Fprintln(out, color.YellowString("  rerun them after the rate limit window (-run) to get a verdict"))
	}

	if failures := results.Failures(); len(failures) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, color.RedString("%s FAILED TESTS:", GlyphFailed))
		for _, f := range failures {
			fmt.Fprintf(out, "   • %s\n", f.TestID)
			writeIndented(out, f.Detail(), "       ")
			if cmd := opts.ReproCommands[f.TestID.String()]; cmd != "" {
				fmt.Fprintf(out, "       reproduce: %s\n", cmd)
			}
		}
	}

	if warnings := results.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, color.YellowString("%s WARNINGS:", GlyphWarning))
		for i, w := range warnings {
			if i == maxWarnings {
				fmt.Fprintf(out, "   ... and %d more\n", len(warnings)-maxWarnings)
				break
			}
			fmt.Fprintf(out, "   • %s: %s\n", w.TestID, strings.ReplaceAll(w.Detail(), "\n", "; "))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, reportRule)
}

func writeIndented(out io.Writer, text, indent string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(out, "%s%s\n", indent, line)
	}
}

// WriteJSONReport writes the results to a file as JSON.
func WriteJSONReport(path string, results Results) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write JSON report: %w", err)
	}
	return nil
}
