package framework

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the classification of a completed test.
type Status int

const (
	StatusPassed Status = iota
	StatusWarning
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusWarning:
		return "warning"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Results is the report for a whole run. Tests only contains tests that actually ran;
// tests excluded by a filter or skipped at runtime are listed in Skipped.
type Results struct {
	Tests   []TestResult
	Skipped []TestID
}

type TestResult struct {
	TestID   TestID
	Status   Status
	Errors   []error
	Warnings []string
	// Throttled is set on a warning that replaced a hard check because the service
	// rate-limited the request.
	Throttled bool
}

func (r TestResult) MarshalJSON() ([]byte, error) {
	errs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e.Error())
	}
	return json.Marshal(struct {
		ID        string   `json:"id"`
		Status    Status   `json:"status"`
		Errors    []string `json:"errors,omitempty"`
		Warnings  []string `json:"warnings,omitempty"`
		Throttled bool     `json:"throttled,omitempty"`
	}{r.TestID.String(), r.Status, errs, r.Warnings, r.Throttled})
}

// Detail returns the failure or warning text of the result, one item per line.
func (r TestResult) Detail() string {
	var lines []string
	for _, e := range r.Errors {
		lines = append(lines, e.Error())
	}
	lines = append(lines, r.Warnings...)
	return strings.Join(lines, "\n")
}

func (r Results) count(status Status) int {
	n := 0
	for _, t := range r.Tests {
		if t.Status == status {
			n++
		}
	}
	return n
}

func (r Results) Passed() int { return r.count(StatusPassed) }
func (r Results) Warned() int { return r.count(StatusWarning) }
func (r Results) Failed() int { return r.count(StatusFailed) }

// Total is always Passed()+Warned()+Failed().
func (r Results) Total() int { return len(r.Tests) }

// PassRate is the percentage of tests that passed outright; 0 if nothing ran.
func (r Results) PassRate() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.Passed()) * 100 / float64(r.Total())
}

// Failures returns the failed tests in the order they ran.
func (r Results) Failures() []TestResult {
	return r.filter(StatusFailed)
}

// Warnings returns the tests that completed with a warning, in the order they ran.
func (r Results) Warnings() []TestResult {
	return r.filter(StatusWarning)
}

// Throttled returns the warnings that stand in for hard checks the service rate-limited.
func (r Results) Throttled() []TestResult {
	var ret []TestResult
	for _, t := range r.Warnings() {
		if t.Throttled {
			ret = append(ret, t)
		}
	}
	return ret
}

func (r Results) filter(status Status) []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if t.Status == status {
			ret = append(ret, t)
		}
	}
	return ret
}

// OK is true if there were no hard failures. Warnings do not count.
func (r Results) OK() bool {
	return r.Failed() == 0
}

func (r Results) MarshalJSON() ([]byte, error) {
	skipped := make([]string, 0, len(r.Skipped))
	for _, id := range r.Skipped {
		skipped = append(skipped, id.String())
	}
	tests := r.Tests
	if tests == nil {
		tests = []TestResult{}
	}
	return json.Marshal(struct {
		Total     int          `json:"total"`
		Passed    int          `json:"passed"`
		Warnings  int          `json:"warnings"`
		Failed    int          `json:"failed"`
		Throttled int          `json:"throttled"`
		PassRate  float64      `json:"passRate"`
		Tests     []TestResult `json:"tests"`
		Skipped   []string     `json:"skipped,omitempty"`
	}{r.Total(), r.Passed(), r.Warned(), r.Failed(), len(r.Throttled()), r.PassRate(), tests, skipped})
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}
