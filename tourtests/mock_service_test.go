package tourtests

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/odysseywalk/tour-contract-tests/servicedef"

	"github.com/google/uuid"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

const (
	mockTTSLimit    = 28
	mockTTSCooldown = 200 * time.Millisecond
	mockMaxLabel    = 1000
	mockTourID      = "golden-gate"
)

type mockServiceOptions struct {
	llmConfigured  bool
	ttsConfigured  bool
	skipValidation bool
	// stalledTTSText makes TTS requests with exactly this text hang until the client gives up.
	stalledTTSText string
	// generateLimit, if non-zero, rate-limits tour generation after that many requests.
	generateLimit int
}

func correctService() mockServiceOptions {
	return mockServiceOptions{llmConfigured: true, ttsConfigured: true}
}

// mockService behaves the way the walking-tour service is supposed to. Its TTS rate limiter
// counts every request until it first rejects one, then resets after a cooldown.
type mockService struct {
	opts          mockServiceOptions
	lock          sync.Mutex
	ttsCount      int
	ttsLimitUntil time.Time
	generateCount int
}

func newMockService(opts mockServiceOptions) *mockService {
	return &mockService{opts: opts}
}

func (m *mockService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+servicedef.PathHealth, httphelpers.HandlerWithJSONResponse(map[string]interface{}{
		"ok":                   true,
		"mapsKeyPresent":       m.opts.llmConfigured,
		"openRouterConfigured": m.opts.llmConfigured,
		"gradiumConfigured":    m.opts.ttsConfigured,
		"fallbacks":            map[string]string{"tts": "Browser SpeechSynthesis API"},
	}, nil))
	mux.Handle("GET "+servicedef.PathTTSStatus, httphelpers.HandlerWithJSONResponse(map[string]interface{}{
		"gradiumConfigured": m.opts.ttsConfigured,
		"env":               map[string]bool{"hasKey": m.opts.ttsConfigured},
	}, nil))
	mux.HandleFunc("POST "+servicedef.PathTourGenerate, m.generateTour)
	mux.HandleFunc("POST "+servicedef.PathTTS, m.tts)
	mux.HandleFunc("POST "+servicedef.PathQA, m.qa)
	mux.Handle("POST "+servicedef.PathSTT, httphelpers.HandlerWithResponse(http.StatusServiceUnavailable,
		jsonHeaders(), []byte(`{"error":"STT is WebSocket-only","fallback":"browser"}`)))
	mux.Handle("GET "+servicedef.PathTours, httphelpers.HandlerWithJSONResponse(map[string]interface{}{
		"tours": []map[string]interface{}{{"tourId": mockTourID, "name": "Golden Gate", "poiCount": 3}},
	}, nil))
	mux.HandleFunc("GET "+servicedef.PathTours+"/{tourId}", m.getTour)

	page := httphelpers.HandlerWithResponse(http.StatusOK, http.Header{"Content-Type": {"text/html"}},
		[]byte("<html><h1>Discover Walking Tours</h1></html>"))
	for _, route := range servicedef.PageRoutes {
		pattern := "GET " + route.Path
		if route.Path == "/" {
			pattern = "GET /{$}"
		}
		mux.Handle(pattern, page)
	}
	return mux
}

func jsonHeaders() http.Header {
	return http.Header{"Content-Type": {"application/json"}}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type mockTourRequest struct {
	Start *struct {
		Lat   *float64 `json:"lat"`
		Lng   *float64 `json:"lng"`
		Label string   `json:"label"`
	} `json:"start"`
	Theme       *string `json:"theme"`
	DurationMin *int    `json:"durationMin"`
}

func (m *mockService) allowGenerate() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.generateCount++
	return m.opts.generateLimit == 0 || m.generateCount <= m.opts.generateLimit
}

func (m *mockService) generateTour(w http.ResponseWriter, r *http.Request) {
	if !m.opts.llmConfigured {
		writeError(w, http.StatusServiceUnavailable, "OpenRouter not configured")
		return
	}
	if !m.allowGenerate() {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusUnsupportedMediaType, "expected JSON")
		return
	}
	var req mockTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Start == nil || req.Start.Lat == nil || req.Start.Lng == nil {
		writeError(w, http.StatusBadRequest, "start with lat, lng, label required")
		return
	}
	lat, lng := *req.Start.Lat, *req.Start.Lng
	if !m.opts.skipValidation {
		if req.Theme == nil || req.DurationMin == nil {
			writeError(w, http.StatusBadRequest, "theme and durationMin required")
			return
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			writeError(w, http.StatusBadRequest, "invalid coordinates")
			return
		}
		if *req.DurationMin < servicedef.MinDurationMin || *req.DurationMin > servicedef.MaxDurationMin {
			writeError(w, http.StatusBadRequest, "invalid duration")
			return
		}
		if len(req.Start.Label) > mockMaxLabel {
			writeError(w, http.StatusRequestEntityTooLarge, "label too long")
			return
		}
	}

	var pois []map[string]interface{}
	routePoints := []servicedef.LatLng{{Lat: lat, Lng: lng}}
	for i := 1; i <= 5; i++ {
		p := servicedef.LatLng{Lat: lat + float64(i)*0.002, Lng: lng + float64(i)*0.002}
		pois = append(pois, map[string]interface{}{
			"poiId":  fmt.Sprintf("poi-%d", i),
			"name":   fmt.Sprintf("Stop %d", i),
			"lat":    p.Lat,
			"lng":    p.Lng,
			"script": "A short story about this stop.",
			"facts":  []string{"fact"},
		})
		routePoints = append(routePoints, p)
	}
	routePoints = append(routePoints, servicedef.LatLng{Lat: lat, Lng: lng})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": "session-" + uuid.NewString(),
		"tourPlan": map[string]interface{}{
			"intro":          "Welcome to your walking tour starting at " + req.Start.Label + ". Today we will explore five remarkable places together.",
			"outro":          "Thanks for walking with us.",
			"routePoints":    routePoints,
			"distanceMeters": 2400,
		},
		"pois": pois,
	})
}

func (m *mockService) allowTTS() (bool, int) {
	m.lock.Lock()
	defer m.lock.Unlock()
	now := time.Now()
	if !m.ttsLimitUntil.IsZero() && now.After(m.ttsLimitUntil) {
		m.ttsCount = 0
		m.ttsLimitUntil = time.Time{}
	}
	m.ttsCount++
	if m.ttsCount <= mockTTSLimit {
		return true, 0
	}
	if m.ttsLimitUntil.IsZero() {
		m.ttsLimitUntil = now.Add(mockTTSCooldown)
	}
	return false, 1
}

func (m *mockService) tts(w http.ResponseWriter, r *http.Request) {
	if !m.opts.ttsConfigured {
		writeError(w, http.StatusServiceUnavailable, "TTS not configured")
		return
	}
	if ok, retryAfter := m.allowTTS(); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		writeError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(mockTTSLimit))
	var req servicedef.TTSParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Text == nil || *req.Text == "" {
		writeError(w, http.StatusBadRequest, "Missing text")
		return
	}
	if req.Lang != "" && req.Lang != "en" && req.Lang != "fr" {
		writeError(w, http.StatusBadRequest, "unsupported language")
		return
	}
	text := *req.Text
	if m.opts.stalledTTSText != "" && text == m.opts.stalledTTSText {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		return
	}
	if len(text) > servicedef.MaxTTSTextLength {
		text = text[:servicedef.MaxTTSTextLength]
	}
	audio := append([]byte("RIFF"), []byte(text)...)
	writeJSON(w, http.StatusOK, map[string]string{
		"audioBase64": base64.StdEncoding.EncodeToString(audio),
		"mimeType":    "audio/wav",
	})
}

func (m *mockService) qa(w http.ResponseWriter, r *http.Request) {
	if !m.opts.llmConfigured {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":      "OpenRouter not configured",
			"answerText": "I don't have access to answers right now.",
		})
		return
	}
	var req servicedef.QAParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.QuestionText == "" {
		writeError(w, http.StatusBadRequest, "Missing question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"answerText": "This stop is known for its history and its views over the bay.",
	})
}

func (m *mockService) getTour(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("tourId")
	if id != mockTourID {
		writeError(w, http.StatusNotFound, "Tour not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tour": map[string]string{"tourId": mockTourID, "name": "Golden Gate"},
		"pois": []map[string]string{{"poiId": "poi-1"}},
	})
}
