package tourtests

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/odysseywalk/tour-contract-tests/framework"

	"github.com/tidwall/gjson"
)

const (
	dependencyLLM = "the tour generator's language model (OpenRouter)"
	dependencyTTS = "the speech synthesis provider (Gradium)"
	dependencyQA  = "the question answering model (OpenRouter)"
)

// RequireReachable fails and exits the test if no HTTP response was received.
func (t *T) RequireReachable(resp framework.Response) {
	if !resp.Reachable() {
		t.Errorf("service unreachable: %s", resp.Describe())
		t.FailNow()
	}
}

// RequireStatus fails and exits the test unless the response status is one of codes.
//
// A 429 that was not asked for means the service throttled the request before it could
// be checked; that is recorded as a throttled warning rather than a failure, and the run
// summary counts it.
func (t *T) RequireStatus(resp framework.Response, codes ...int) {
	t.RequireReachable(resp)
	if resp.StatusIn(codes...) {
		return
	}
	if resp.StatusIn(http.StatusTooManyRequests) {
		t.context.WarnThrottled("request was rate limited, so the check could not run: %s", resp.Describe())
	}
	t.Errorf("expected status %s, got %s", describeCodes(codes), resp.Describe())
	t.FailNow()
}

// RequireAvailable exits the test with a warning if the service reported that a dependency
// it needs for this request is not configured.
func (t *T) RequireAvailable(resp framework.Response, dependency string) {
	if resp.StatusIn(http.StatusServiceUnavailable) {
		t.WarnNow("%s is unavailable (status 503), so the check could not run", dependency)
	}
}

// ExpectStatusOrWarn is the soft form of RequireStatus: a status outside codes is recorded
// as a warning. Getting no response at all is still a failure.
func (t *T) ExpectStatusOrWarn(resp framework.Response, codes ...int) {
	t.RequireReachable(resp)
	if !resp.StatusIn(codes...) {
		t.WarnNow("expected status %s, got %s", describeCodes(codes), resp.Describe())
	}
}

// AcceptUnderdetermined checks a request for which the service's contract allows more than
// one outcome. A status outside codes fails; any status inside it completes the test with
// a warning that names the status that was chosen, since no single outcome is correct.
func (t *T) AcceptUnderdetermined(resp framework.Response, codes ...int) {
	t.RequireStatus(resp, codes...)
	t.Warnf("underdetermined contract: status %d accepted (any of %s is allowed)",
		resp.Status.IntValue(), describeCodes(codes))
}

// RequireProperty fails and exits the test if the response body has no value at the given
// gjson path.
func (t *T) RequireProperty(resp framework.Response, path string) gjson.Result {
	value := resp.Get(path)
	if !value.Exists() {
		t.Errorf("response has no %q property: %s", path, resp.Describe())
		t.FailNow()
	}
	return value
}

func describeCodes(codes []int) string {
	switch len(codes) {
	case 0:
		return "(none)"
	case 1:
		return fmt.Sprintf("%d", codes[0])
	}
	parts := make([]string, 0, len(codes))
	for _, c := range codes[:len(codes)-1] {
		parts = append(parts, fmt.Sprintf("%d", c))
	}
	return fmt.Sprintf("%s or %d", strings.Join(parts, ", "), codes[len(codes)-1])
}
