package framework

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeResults(passed, warned, failed int) Results {
	var r Results
	for i := 0; i < passed; i++ {
		r.Tests = append(r.Tests, TestResult{TestID: id("pass", fmt.Sprint(i)), Status: StatusPassed})
	}
	for i := 0; i < warned; i++ {
		r.Tests = append(r.Tests, TestResult{TestID: id("warn", fmt.Sprint(i)), Status: StatusWarning,
			Warnings: []string{fmt.Sprintf("warning %d", i)}})
	}
	for i := 0; i < failed; i++ {
		r.Tests = append(r.Tests, TestResult{TestID: id("fail", fmt.Sprint(i)), Status: StatusFailed,
			Errors: []error{fmt.Errorf("expected status 400, got 200")}})
	}
	return r
}

func printResults(results Results, opts ReportOptions) string {
	color.NoColor = true
	var buf bytes.Buffer
	PrintResults(&buf, results, opts)
	return buf.String()
}

func TestReportTotals(t *testing.T) {
	out := printResults(makeResults(3, 0, 1), ReportOptions{})

	assert.Contains(t, out, "FINAL TEST REPORT")
	assert.Contains(t, out, "Total Tests: 4\n")
	assert.Contains(t, out, "✓ Passed:   3")
	assert.Contains(t, out, "⚠ Warnings: 0")
	assert.Contains(t, out, "✗ Failed:   1")
	assert.Contains(t, out, "Pass Rate: 75.0%")
	assert.Contains(t, out, "✗ FAILED TESTS:")
	assert.Contains(t, out, "   • fail/0\n       expected status 400, got 200\n")
	assert.NotContains(t, out, "WARNINGS:")
}

func TestReportCapsWarnings(t *testing.T) {
	out := printResults(makeResults(0, 13, 0), ReportOptions{})

	assert.Contains(t, out, "   • warn/9: warning 9")
	assert.NotContains(t, out, "warn/10")
	assert.Contains(t, out, "   ... and 3 more")

	out = printResults(makeResults(0, 13, 0), ReportOptions{MaxWarningsShown: 20})
	assert.Contains(t, out, "warn/12")
	assert.NotContains(t, out, "more")
}

func TestReportIncludesReproCommands(t *testing.T) {
	out := printResults(makeResults(0, 0, 1), ReportOptions{
		ReproCommands: map[string]string{"fail/0": "curl -X POST http://localhost:3006/api/tts"},
	})
	assert.Contains(t, out, "       reproduce: curl -X POST http://localhost:3006/api/tts\n")
}

func TestReportCountsThrottledChecks(t *testing.T) {
	results := makeResults(1, 2, 0)
	results.Tests[1].Throttled = true
	out := printResults(results, ReportOptions{})
	assert.Contains(t, out, "⚠ 1 hard checks were downgraded to warnings because the service rate-limited them")

	out = printResults(makeResults(1, 2, 0), ReportOptions{})
	assert.NotContains(t, out, "downgraded")
}

func TestEmptyRunHasZeroPassRate(t *testing.T) {
	out := printResults(Results{}, ReportOptions{})
	assert.Contains(t, out, "Total Tests: 0")
	assert.Contains(t, out, "Pass Rate: 0.0%")
	assert.True(t, Results{}.OK())
}

func TestMultiLineDetailsAreIndented(t *testing.T) {
	results := Results{Tests: []TestResult{{
		TestID: id("a"),
		Status: StatusFailed,
		Errors: []error{errors.New("line one\nline two")},
	}}}
	out := printResults(results, ReportOptions{})
	assert.Contains(t, out, "       line one\n       line two\n")
}

func TestWriteJSONReport(t *testing.T) {
	results := makeResults(1, 1, 1)
	results.Skipped = []TestID{id("load", "rate limiting active")}
	results.Tests[1].Throttled = true
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSONReport(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var parsed struct {
		Total     int `json:"total"`
		Passed    int `json:"passed"`
		Warnings  int `json:"warnings"`
		Failed    int `json:"failed"`
		Throttled int `json:"throttled"`
		Tests     []struct {
			ID        string   `json:"id"`
			Status    string   `json:"status"`
			Errors    []string `json:"errors"`
			Warnings  []string `json:"warnings"`
			Throttled bool     `json:"throttled"`
		} `json:"tests"`
		Skipped []string `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, 3, parsed.Total)
	assert.Equal(t, 1, parsed.Passed)
	assert.Equal(t, 1, parsed.Warnings)
	assert.Equal(t, 1, parsed.Failed)
	assert.Equal(t, 1, parsed.Throttled)
	require.Len(t, parsed.Tests, 3)
	assert.Equal(t, "warning", parsed.Tests[1].Status)
	assert.Equal(t, []string{"warning 0"}, parsed.Tests[1].Warnings)
	assert.True(t, parsed.Tests[1].Throttled)
	assert.False(t, parsed.Tests[0].Throttled)
	assert.Equal(t, []string{"expected status 400, got 200"}, parsed.Tests[2].Errors)
	assert.Equal(t, []string{"load/rate limiting active"}, parsed.Skipped)
}

func TestMetricsFile(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("/api/tts", Response{Status: statusOf(200)})
	m.ObserveRequest("/api/tts", Response{})
	m.RecordResults(makeResults(2, 1, 1))

	path := filepath.Join(t.TempDir(), "tour_contract.prom")
	require.NoError(t, m.WriteToFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `tour_contract_tests{result="passed"} 2`)
	assert.Contains(t, text, `tour_contract_tests{result="warning"} 1`)
	assert.Contains(t, text, `tour_contract_tests{result="failed"} 1`)
	assert.Contains(t, text, `tour_contract_pass_rate_percent 50`)
	assert.Contains(t, text, `tour_contract_request_duration_seconds_count{endpoint="/api/tts",status="200"} 1`)
	assert.Contains(t, text, `tour_contract_request_duration_seconds_count{endpoint="/api/tts",status="none"} 1`)
	assert.False(t, strings.Contains(text, "go_goroutines"), "only harness metrics are exported")
}
