package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished []TestResult
	skipped  map[string]string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.started = append(r.started, id.String())
}

func (r *recordingTestLogger) TestFinished(result TestResult, _ CapturedOutput) {
	r.finished = append(r.finished, result)
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	if r.skipped == nil {
		r.skipped = make(map[string]string)
	}
	r.skipped[id.String()] = reason
}

func statusesByID(results Results) map[string]Status {
	ret := make(map[string]Status)
	for _, r := range results.Tests {
		ret[r.TestID.String()] = r.Status
	}
	return ret
}

func TestPassWarnAndFail(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("passes", func(c *Context) {})
		c.Run("warns", func(c *Context) {
			c.Warnf("slow: %dms", 150)
		})
		c.Run("fails", func(c *Context) {
			c.Errorf("bad status %d", 500)
		})
		c.Run("warns then fails", func(c *Context) {
			c.Warnf("first")
			c.Errorf("second")
		})
	})

	assert.Equal(t, map[string]Status{
		"passes":           StatusPassed,
		"warns":            StatusWarning,
		"fails":            StatusFailed,
		"warns then fails": StatusFailed,
	}, statusesByID(results))
	assert.Equal(t, 4, results.Total())
	assert.Equal(t, results.Total(), results.Passed()+results.Warned()+results.Failed())
	assert.Equal(t, 25.0, results.PassRate())
	assert.False(t, results.OK())
}

func TestWarningsDoNotAffectOK(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("warns", func(c *Context) { c.WarnNow("optional feature missing") })
	})
	assert.True(t, results.OK())
	require.Len(t, results.Warnings(), 1)
	assert.Equal(t, []string{"optional feature missing"}, results.Warnings()[0].Warnings)
}

func TestThrottledWarningsAreMarked(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("throttled", func(c *Context) { c.WarnThrottled("request was rate limited") })
		c.Run("warns", func(c *Context) { c.WarnNow("slow") })
		c.Run("fails first", func(c *Context) {
			c.Errorf("boom")
			c.WarnThrottled("request was rate limited")
		})
	})
	assert.Equal(t, map[string]Status{
		"throttled":   StatusWarning,
		"warns":       StatusWarning,
		"fails first": StatusFailed,
	}, statusesByID(results))
	require.Len(t, results.Throttled(), 1)
	assert.Equal(t, "throttled", results.Throttled()[0].TestID.String())
	assert.False(t, results.OK())
}

func TestFailNowStopsTest(t *testing.T) {
	reached := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("stops", func(c *Context) {
			c.Errorf("boom")
			c.FailNow()
			reached = true
		})
		c.Run("next", func(c *Context) {})
	})
	assert.False(t, reached)
	assert.Equal(t, map[string]Status{"stops": StatusFailed, "next": StatusPassed}, statusesByID(results))
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("silent", func(c *Context) { c.FailNow() })
	})
	require.Len(t, results.Failures(), 1)
	assert.Equal(t, "test failed with no failure message", results.Failures()[0].Detail())
}

func TestPanicIsContainedAndRecordedAsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			var m map[string]int
			m["x"] = 1
		})
		c.Run("panics with error", func(c *Context) {
			panic(errors.New("kaboom"))
		})
		c.Run("still runs", func(c *Context) {})
	})

	statuses := statusesByID(results)
	assert.Equal(t, StatusFailed, statuses["panics"])
	assert.Equal(t, StatusFailed, statuses["panics with error"])
	assert.Equal(t, StatusPassed, statuses["still runs"])
	assert.Contains(t, results.Failures()[1].Detail(), "unexpected panic in test: kaboom")
}

func TestGroupsAreOnlyReportedWhenTheyFailThemselves(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("quiet group", func(c *Context) {
			c.Run("a", func(c *Context) {})
			c.Run("b", func(c *Context) { c.Warnf("w") })
		})
		c.Run("broken group", func(c *Context) {
			c.Run("a", func(c *Context) {})
			panic("setup failed")
		})
	})

	assert.Equal(t, map[string]Status{
		"quiet group/a":  StatusPassed,
		"quiet group/b":  StatusWarning,
		"broken group/a": StatusPassed,
		"broken group":   StatusFailed,
	}, statusesByID(results))
}

func TestSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("no tours installed")
		})
	})
	assert.Equal(t, 0, results.Total())
	assert.Equal(t, []TestID{{Path: []string{"skipped"}}}, results.Skipped)
	assert.Equal(t, "no tours installed", logger.skipped["skipped"])
}

func TestFilteredTestsAreSkippedAndNotCounted(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("slow"))
	logger := &recordingTestLogger{}

	results := Run(filters.AsFilter, logger, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("fast", func(c *Context) {})
			c.Run("slow", func(c *Context) { c.Errorf("should not run") })
		})
	})

	assert.Equal(t, 1, results.Total())
	assert.True(t, results.OK())
	assert.Equal(t, "excluded by filter parameters", logger.skipped["group/slow"])
	assert.Equal(t, []string{"group", "group/fast"}, logger.started)
	require.Len(t, logger.finished, 1)
	assert.Equal(t, "group/fast", logger.finished[0].TestID.String())
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	var output CapturedOutput
	logger := &capturingTestLogger{onFinished: func(o CapturedOutput) { output = o }}
	Run(nil, logger, func(c *Context) {
		c.Run("talks", func(c *Context) {
			c.Debug("sent %d requests", 3)
		})
	})
	require.Len(t, output, 1)
	assert.Equal(t, "sent 3 requests", output[0].Message)
}

type capturingTestLogger struct {
	nullTestLogger
	onFinished func(CapturedOutput)
}

func (c *capturingTestLogger) TestFinished(_ TestResult, o CapturedOutput) {
	c.onFinished(o)
}
