package tourtests

import (
	"net/http"
	"time"

	"github.com/odysseywalk/tour-contract-tests/servicedef"
)

// DoPerformanceTests checks latency against the configured targets. Missing a target is
// only ever a warning: the numbers depend on the machine and the upstream providers.
func DoPerformanceTests(t *T) {
	cfg := t.Config().Performance

	t.Run("health latency", func(t *T) {
		if cfg.HealthSamples <= 0 {
			t.SkipWithReason("no health samples configured")
		}
		var total time.Duration
		for i := 0; i < cfg.HealthSamples; i++ {
			resp := t.Get(servicedef.PathHealth)
			t.RequireStatus(resp, http.StatusOK)
			total += resp.Elapsed
		}
		avg := total / time.Duration(cfg.HealthSamples)
		t.Debug("average health latency over %d requests: %s", cfg.HealthSamples, avg)
		if avg > cfg.HealthTarget.Std() {
			t.Warnf("average health latency %s exceeds target %s", avg, cfg.HealthTarget)
		}
	})

	t.Run("TTS latency", func(t *T) {
		resp := t.TTS(ttsText("Hello, this is a performance test.", "en"))
		t.RequireAvailable(resp, dependencyTTS)
		t.RequireStatus(resp, http.StatusOK)
		if resp.Elapsed > cfg.TTSTarget.Std() {
			t.Warnf("TTS took %s, target is %s", resp.Elapsed, cfg.TTSTarget)
		}
	})

	t.Run("tour generation latency", func(t *T) {
		resp := t.GenerateTour(tourWithLabel("SF"))
		t.requireGeneratedTour(resp)
		if resp.Elapsed > cfg.TourTarget.Std() {
			t.Warnf("tour generation took %s, target is %s", resp.Elapsed, cfg.TourTarget)
		}
	})

	t.Run("stability", func(t *T) {
		unexpected := make(map[string]int)
		for i := 0; i < cfg.StabilityRequests; i++ {
			resp := t.Get(servicedef.PathHealth)
			t.RequireReachable(resp)
			if !resp.StatusIn(http.StatusOK) {
				unexpected[resp.StatusString()]++
			}
		}
		if len(unexpected) > 0 {
			t.Warnf("%d consecutive health requests returned non-200 statuses: %v", cfg.StabilityRequests, unexpected)
		}
	})
}
