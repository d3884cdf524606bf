package tourtests

import (
	"encoding/base64"
	"net/http"

	"github.com/odysseywalk/tour-contract-tests/boundary"
	"github.com/odysseywalk/tour-contract-tests/framework"
	"github.com/odysseywalk/tour-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

// longTTSSentence repeated longTTSRepeats times is longer than the service's TTS input
// limit, which it is expected to truncate rather than reject.
const (
	longTTSSentence = "Hello. "
	longTTSRepeats  = 1000
)

func DoTTSTests(t *T) {
	t.Run("valid request", func(t *T) {
		resp := t.TTS(servicedef.TTSParams{
			Text:         servicedef.String("Hello, this is a test."),
			Lang:         "en",
			VoiceStyle:   "friendly",
			ReturnBase64: true,
		})
		t.RequireAvailable(resp, dependencyTTS)
		t.RequireStatus(resp, http.StatusOK)
		audio := t.RequireProperty(resp, "audioBase64").String()
		decoded, err := base64.StdEncoding.DecodeString(audio)
		assert.NoError(t, err, "audioBase64 is not valid base64")
		assert.NotEmpty(t, decoded, "audio is empty")
	})

	t.Run("languages", func(t *T) {
		for _, lang := range servicedef.Languages {
			t.Run(lang, func(t *T) {
				resp := t.TTS(servicedef.TTSParams{Text: servicedef.String("Test"), Lang: lang, VoiceStyle: "friendly"})
				t.RequireStatus(resp, http.StatusOK, http.StatusServiceUnavailable)
			})
		}
	})

	t.Run("empty text rejected", func(t *T) {
		resp := t.TTS(servicedef.TTSParams{Text: servicedef.String(""), Lang: "en"})
		t.RequireAvailable(resp, dependencyTTS)
		t.RequireStatus(resp, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	t.Run("missing text rejected", func(t *T) {
		resp := t.TTS(servicedef.TTSParams{Lang: "en"})
		t.RequireAvailable(resp, dependencyTTS)
		t.RequireStatus(resp, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	softCases := []struct {
		name, text, lang string
	}{
		{"very long text is truncated", boundary.RepeatedSentence(longTTSSentence, longTTSRepeats), "en"},
		{"special characters", boundary.SpecialCharacters, "en"},
		{"unicode and emoji", boundary.UnicodeText, "en"},
		{"characters outside the BMP", boundary.HighCodepointText(), "en"},
		{"French", "Bonjour, comment allez-vous?", "fr"},
		{"very short text", "Hi", "en"},
		{"punctuation only", boundary.PunctuationOnly, "en"},
	}
	for _, c := range softCases {
		t.Run(c.name, func(t *T) {
			resp := t.TTS(ttsText(c.text, c.lang))
			t.RequireAvailable(resp, dependencyTTS)
			t.ExpectStatusOrWarn(resp, http.StatusOK)
			assertAudio(t, resp)
		})
	}

	t.Run("invalid language", func(t *T) {
		resp := t.TTS(servicedef.TTSParams{Text: servicedef.String("Hello"), Lang: "invalid"})
		t.RequireAvailable(resp, dependencyTTS)
		t.AcceptUnderdetermined(resp, http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})
}

func assertAudio(t *T, resp framework.Response) {
	assert.NotEmpty(t, resp.Get("audioBase64").String(), "response has no audio")
}
