package tourtests

import (
	"net/http"

	"github.com/odysseywalk/tour-contract-tests/boundary"
	"github.com/odysseywalk/tour-contract-tests/framework"
	"github.com/odysseywalk/tour-contract-tests/servicedef"
)

var jsonEndpoints = []struct {
	name, path, dependency string
}{
	{"tour generation", servicedef.PathTourGenerate, dependencyLLM},
	{"text to speech", servicedef.PathTTS, dependencyTTS},
	{"question answering", servicedef.PathQA, dependencyQA},
}

func DoErrorHandlingTests(t *T) {
	t.Run("malformed JSON rejected", func(t *T) {
		for _, e := range jsonEndpoints {
			t.Run(e.name, func(t *T) {
				resp := t.Do(framework.RequestParams{
					Method:  http.MethodPost,
					Path:    e.path,
					RawBody: boundary.MalformedJSON,
				})
				t.RequireAvailable(resp, e.dependency)
				t.RequireStatus(resp, http.StatusBadRequest, http.StatusUnprocessableEntity)
			})
		}
	})

	t.Run("wrong method rejected", func(t *T) {
		resp := t.Get(servicedef.PathTTS)
		t.RequireStatus(resp, http.StatusMethodNotAllowed, http.StatusBadRequest, http.StatusNotFound)
	})

	t.Run("missing Content-Type", func(t *T) {
		resp := t.Do(framework.RequestParams{
			Method:          http.MethodPost,
			Path:            servicedef.PathTourGenerate,
			Body:            servicedef.TourGenerateParams{Start: &servicedef.StartLocation{Lat: sanFrancisco.Lat, Lng: sanFrancisco.Lng}},
			OmitContentType: true,
		})
		t.RequireAvailable(resp, dependencyLLM)
		t.AcceptUnderdetermined(resp, http.StatusOK, http.StatusBadRequest, http.StatusUnsupportedMediaType)
	})
}
