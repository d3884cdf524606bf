package tourtests

import (
	"fmt"
	"net/http"
	"time"

	"github.com/odysseywalk/tour-contract-tests/framework"
	"github.com/odysseywalk/tour-contract-tests/servicedef"
)

// DoLoadTests runs last: the rate-limit probe deliberately exhausts the service's request
// budget for the TTS endpoint.
func DoLoadTests(t *T) {
	t.Run("concurrent TTS requests", func(t *T) {
		cfg := t.Config().Concurrency
		responses := t.Concurrently(cfg.Requests, func(i int) framework.RequestParams {
			return framework.RequestParams{
				Method: http.MethodPost,
				Path:   servicedef.PathTTS,
				Body:   ttsText(fmt.Sprintf("Test %d", i), "en"),
			}
		})

		// Only aggregate counts are judged: single requests may time out under load.
		succeeded := framework.CountStatus(responses, http.StatusOK)
		unavailable := framework.CountStatus(responses, http.StatusServiceUnavailable)
		unreachable := len(responses) - framework.CountReachable(responses)
		t.Debug("concurrent TTS: %d/%d succeeded, %d got no response", succeeded, len(responses), unreachable)
		if len(responses) > 0 && unreachable == len(responses) {
			t.Errorf("service unreachable: none of %d concurrent requests got a response: %s",
				len(responses), responses[0].Describe())
			t.FailNow()
		}
		if succeeded == 0 && unavailable > 0 && unavailable+unreachable == len(responses) {
			t.WarnNow("%s is unavailable (status 503), so the check could not run", dependencyTTS)
		}
		if succeeded < cfg.MinSuccesses {
			t.Errorf("only %d of %d concurrent requests succeeded, expected at least %d",
				succeeded, len(responses), cfg.MinSuccesses)
		}
	})

	t.Run("rate limiting active", func(t *T) {
		result := t.ProbeRateLimit(func(i int) framework.RequestParams {
			return framework.RequestParams{
				Method: http.MethodPost,
				Path:   servicedef.PathTTS,
				Body:   ttsText(fmt.Sprintf("Test %d", i), "en"),
			}
		})
		t.Debug("rate limit probe: %d requests, statuses %v, advertised limit %d",
			result.Attempts, result.Statuses, result.AdvertisedLimit)
		if result.Statuses["none"] == result.Attempts {
			t.Errorf("service unreachable during the rate limit probe")
			t.FailNow()
		}
		if !result.Limited {
			t.WarnNow("no rate limit hit after %d requests (statuses: %v)", result.Attempts, result.Statuses)
		}
		t.Debug("hit limit after %d requests, Retry-After %s", result.Attempts, result.RetryAfter)
	})

	t.Run("recovery after rate limit", func(t *T) {
		wait := t.Config().RateLimit.RecoveryWait.Std()
		t.Debug("waiting %s for the rate limit to reset", wait)
		time.Sleep(wait)
		resp := t.TTS(ttsText("Recovery test", "en"))
		t.RequireStatus(resp, http.StatusOK, http.StatusServiceUnavailable)
	})
}
