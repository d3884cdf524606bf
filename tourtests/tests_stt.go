package tourtests

import (
	"net/http"

	"github.com/odysseywalk/tour-contract-tests/framework"
	"github.com/odysseywalk/tour-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

var fakeAudio = framework.MultipartFile{
	FieldName:   "audio",
	FileName:    "test.webm",
	ContentType: "audio/webm",
	Data:        []byte("fake audio data"),
}

func DoSTTTests(t *T) {
	t.Run("upload falls back to browser recognition", func(t *T) {
		file := fakeAudio
		resp := t.Do(framework.RequestParams{
			Method:    http.MethodPost,
			Path:      servicedef.PathSTT,
			Multipart: &file,
		})
		t.RequireStatus(resp, http.StatusServiceUnavailable)
		fallback := t.RequireProperty(resp, "fallback")
		assert.NotEmpty(t, fallback.String(), "fallback is empty")
	})
}
