package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    *Results
	testLogger TestLogger
	filter     Filter
}

// Context is the framework-level state of a single test or group of tests. Domain-specific
// test APIs wrap it, the same way a *testing.T is wrapped by test helpers.
//
// A test fails if Errorf or FailNow is called, or if it panics. A test that calls Warnf or
// WarnNow without failing completes with StatusWarning: that is how a test reports that an
// optional feature is missing or that the service's contract is ambiguous, without
// affecting the exit status of the run.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	warned      bool
	throttled   bool
	skipped     bool
	skipReason  string
	hasChildren bool
	errors      []error
	warnings    []string
}

// Run creates a root Context and runs the action in it. Every test started with
// Context.Run inside the action contributes to the returned Results.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		results:    &Results{},
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return *env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				return
			}
			var addError error
			if r == c {
				if c.failed && len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				c.failed = true
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
			}
		}
		if c.skipped {
			return
		}
		if c.hasChildren && !c.failed && !c.warned {
			// A group of tests is only reported on its own if something went wrong outside
			// of its subtests.
			return
		}
		result := TestResult{
			TestID:    c.id,
			Status:    c.Status(),
			Errors:    c.errors,
			Warnings:  c.warnings,
			Throttled: c.throttled && !c.failed,
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		c.env.testLogger.TestFinished(result, c.debugLogger.Output())
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// Status is the current classification of the test.
func (c *Context) Status() Status {
	switch {
	case c.failed:
		return StatusFailed
	case c.warned:
		return StatusWarning
	default:
		return StatusPassed
	}
}

// Run runs a subtest. Subtests run synchronously, in order.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)
	c.hasChildren = true

	if c.env.filter != nil && !c.env.filter(id) {
		c.env.results.Skipped = append(c.env.results.Skipped, id)
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c.env.testLogger.TestStarted(id)
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.results.Skipped = append(c.env.results.Skipped, id)
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	}
}

// Errorf records a hard failure but lets the test continue.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	c.errors = append(c.errors, fmt.Errorf(format, args...))
}

func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Warnf records a non-critical problem. It does not stop the test.
func (c *Context) Warnf(format string, args ...interface{}) {
	c.warned = true
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// WarnNow records a non-critical problem and stops the test.
func (c *Context) WarnNow(format string, args ...interface{}) {
	c.Warnf(format, args...)
	panic(c)
}

// WarnThrottled is WarnNow for a check that could not run because the service rate-limited
// the request. The result is marked as throttled so the report can tell it apart from a
// genuine warning.
func (c *Context) WarnThrottled(format string, args ...interface{}) {
	c.throttled = true
	c.WarnNow(format, args...)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
