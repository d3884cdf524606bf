package tourtests

import (
	"fmt"
	"net/http"

	"github.com/odysseywalk/tour-contract-tests/framework"
	"github.com/odysseywalk/tour-contract-tests/servicedef"
)

// Do sends a request to the service under test. The exchange is written to the test's
// debug output, and the request is remembered in case the test fails.
func (t *T) Do(params framework.RequestParams) framework.Response {
	resp := t.env.client.Do(params, t.context.DebugLogger())
	t.lastRequest = &resp.Request
	return resp
}

// Get sends a GET request with no body.
func (t *T) Get(path string) framework.Response {
	return t.Do(framework.RequestParams{Method: http.MethodGet, Path: path})
}

// PostJSON sends a POST request with body encoded as JSON.
func (t *T) PostJSON(path string, body interface{}) framework.Response {
	return t.Do(framework.RequestParams{Method: http.MethodPost, Path: path, Body: body})
}

// GenerateTour asks the service for a new tour.
func (t *T) GenerateTour(params servicedef.TourGenerateParams) framework.Response {
	return t.PostJSON(servicedef.PathTourGenerate, params)
}

// TTS asks the service to synthesize speech.
func (t *T) TTS(params servicedef.TTSParams) framework.Response {
	return t.PostJSON(servicedef.PathTTS, params)
}

// QA asks the service a question about a tour stop.
func (t *T) QA(params servicedef.QAParams) framework.Response {
	return t.PostJSON(servicedef.PathQA, params)
}

// Concurrently sends n requests at the same time and returns once all of them have
// completed, in index order.
func (t *T) Concurrently(n int, request func(i int) framework.RequestParams) []framework.Response {
	logger := t.context.DebugLogger()
	responses := framework.FanOut(n, func(i int) framework.Response {
		return t.env.client.Do(request(i), framework.LoggerWithPrefix(logger, fmt.Sprintf("[%d] ", i)))
	})
	if len(responses) > 0 {
		t.lastRequest = &responses[0].Request
	}
	return responses
}

// ProbeRateLimit sends requests until the service throttles one of them, showing progress
// on the terminal.
func (t *T) ProbeRateLimit(request func(i int) framework.RequestParams) framework.ProbeResult {
	cfg := t.env.config.RateLimit
	progress := framework.NewProgressReporter(cfg.Attempts, "probing rate limit")
	defer progress.Finish()

	result := t.env.client.ProbeRateLimit(framework.RateLimitProbe{
		MaxAttempts: cfg.Attempts,
		Interval:    cfg.Interval.Std(),
		Progress:    progress.Set,
	}, func(i int) framework.RequestParams {
		params := request(i)
		params.Timeout = cfg.RequestTimeout.Std()
		return params
	}, t.context.DebugLogger())
	return result
}
