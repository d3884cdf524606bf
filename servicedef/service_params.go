// Package servicedef describes the HTTP API of the walking-tour service: paths, request
// bodies, and the limits the service is expected to enforce.
package servicedef

const (
	PathHealth       = "/api/health"
	PathTourGenerate = "/api/tour/generate"
	PathTTS          = "/api/tts"
	PathTTSStatus    = "/api/tts/status"
	PathQA           = "/api/qa"
	PathSTT          = "/api/stt"
	PathTours        = "/api/tours"
)

// PathTour returns the path of a single static tour.
func PathTour(tourID string) string {
	return PathTours + "/" + tourID
}

const (
	MinDurationMin = 15
	MaxDurationMin = 90

	MinPOIs = 3
	MaxPOIs = 8

	// MinRoutePoints is start, at least one POI, and end.
	MinRoutePoints = 3

	MaxTTSTextLength = 5000
)

var (
	Themes      = []string{"history", "food", "campus", "spooky", "art"}
	Languages   = []string{"en", "fr"}
	VoiceStyles = []string{"friendly", "historian", "funny"}

	// PageRoutes are the HTML pages of the web app.
	PageRoutes = []PageRoute{
		{"/", "Landing page"},
		{"/create", "Create tour"},
		{"/demo", "Demo mode"},
		{"/tours", "Tour library"},
		{"/tour/active", "Active tour"},
		{"/tour/complete", "Completion"},
	}

	// SecretEnvNames must never appear in any response body.
	SecretEnvNames = []string{"OPENROUTER_API_KEY", "GRADIUM_API_KEY"}
)

type PageRoute struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StartLocation is where a generated tour begins. Label is a pointer so that an absent
// label and an empty one can both be sent.
type StartLocation struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label *string `json:"label,omitempty"`
}

type TourGenerateParams struct {
	Start       *StartLocation `json:"start,omitempty"`
	Theme       string         `json:"theme,omitempty"`
	DurationMin *int           `json:"durationMin,omitempty"`
	Lang        string         `json:"lang,omitempty"`
	VoiceStyle  string         `json:"voiceStyle,omitempty"`
}

type TTSParams struct {
	Text         *string `json:"text,omitempty"`
	Lang         string  `json:"lang,omitempty"`
	VoiceStyle   string  `json:"voiceStyle,omitempty"`
	ReturnBase64 bool    `json:"returnBase64,omitempty"`
}

type QAContext struct {
	CurrentPOIScript string `json:"currentPoiScript,omitempty"`
	TourIntro        string `json:"tourIntro,omitempty"`
	Theme            string `json:"theme,omitempty"`
}

type QAParams struct {
	SessionID    string     `json:"sessionId,omitempty"`
	POIID        string     `json:"poiId,omitempty"`
	QuestionText string     `json:"questionText"`
	Context      *QAContext `json:"context,omitempty"`
}

// String is a convenience for setting optional string fields such as StartLocation.Label
// and TTSParams.Text.
func String(s string) *string {
	return &s
}

// Minutes is a convenience for setting TourGenerateParams.DurationMin.
func Minutes(n int) *int {
	return &n
}

// Start returns a start location with a label.
func Start(lat, lng float64, label string) *StartLocation {
	return &StartLocation{Lat: lat, Lng: lng, Label: String(label)}
}
