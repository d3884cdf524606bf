package framework

// TestLogger receives notifications about test progress. A result is reported through
// TestFinished as soon as the test completes, so that output appears while the run is
// still in progress.
type TestLogger interface {
	TestStarted(id TestID)
	TestFinished(result TestResult, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                      {}
func (n nullTestLogger) TestFinished(TestResult, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)              {}
