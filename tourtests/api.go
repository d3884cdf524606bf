package tourtests

import (
	"github.com/odysseywalk/tour-contract-tests/config"
	"github.com/odysseywalk/tour-contract-tests/framework"
)

// ReproRecorder is told about the last request made by every test that failed, so that the
// caller can print a command that reproduces it.
type ReproRecorder interface {
	RecordFailedRequest(id framework.TestID, request framework.RequestInfo)
}

type environment struct {
	client *framework.ServiceClient
	config config.Config
	repro  ReproRecorder
}

// T represents a test or subtest in the walking-tour contract test suite.
//
// It implements the same basic functionality as Go's testing.T, but outside of the Go test
// runner. It also knows how to talk to the service under test: request methods such as
// GenerateTour send a request through the shared ServiceClient and log the exchange to the
// test's debug output.
//
// To make test assertions, use the assert and require packages, passing the *T as if it
// were a *testing.T. The helpers in this package (RequireStatus, AcceptUnderdetermined, ...)
// add the outcomes that testing.T does not have: a soft failure is recorded as a warning.
type T struct {
	context     *framework.Context
	env         *environment
	lastRequest *framework.RequestInfo
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{context: context, env: env}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Warnf records a problem that does not break the contract, such as a missed latency target.
// The test continues.
func (t *T) Warnf(format string, args ...interface{}) {
	t.context.Warnf(format, args...)
}

// WarnNow records a warning and immediately exits the test.
func (t *T) WarnNow(format string, args ...interface{}) {
	t.context.WarnNow(format, args...)
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	var t1 *T
	t.context.Run(name, func(c *framework.Context) {
		t1 = newTestScope(c, t.env)
		t1.lastRequest = t.lastRequest
		action(t1)
	})
	if t1 != nil {
		t1.close()
	}
}

func (t *T) close() {
	if t.env.repro != nil && t.lastRequest != nil && t.context.Status() == framework.StatusFailed {
		t.env.repro.RecordFailedRequest(t.context.ID(), *t.lastRequest)
	}
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// SkipWithReason stops the test without counting it as passed or failed.
func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Config returns the settings of the current run.
func (t *T) Config() config.Config {
	return t.env.config
}

// ID returns the full name of the test.
func (t *T) ID() framework.TestID {
	return t.context.ID()
}
