package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/odysseywalk/tour-contract-tests/framework"

	"github.com/fatih/color"
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	if len(id.Path) == 1 {
		fmt.Println()
		fmt.Println(color.BlueString("━━━ %s ━━━", strings.ToUpper(id.String())))
	}
}

func (c *ConsoleTestLogger) TestFinished(result framework.TestResult, debugOutput framework.CapturedOutput) {
	line := fmt.Sprintf("%s %s", framework.Glyph(result.Status), result.TestID)
	switch result.Status {
	case framework.StatusPassed:
		fmt.Println(color.GreenString("%s", line))
	case framework.StatusWarning:
		fmt.Println(color.YellowString("%s", line))
	default:
		fmt.Println(color.RedString("%s", line))
	}
	if detail := result.Detail(); detail != "" {
		for _, l := range strings.Split(detail, "\n") {
			fmt.Printf("      %s\n", l)
		}
	}
	failed := result.Status == framework.StatusFailed
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Printf("  SKIPPED: %s\n", id)
	} else {
		fmt.Printf("  SKIPPED: %s (%s)\n", id, reason)
	}
}
