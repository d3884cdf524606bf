package tourtests

import (
	"net/http"

	"github.com/odysseywalk/tour-contract-tests/boundary"
)

// largeLabelLength is well past any sensible place name; the service may accept, reject,
// or refuse it as too large, but must not fail.
const largeLabelLength = 10000

func DoSecurityTests(t *T) {
	t.Run("XSS in location label", func(t *T) {
		resp := t.GenerateTour(tourWithLabel(boundary.XSSPayload))
		t.RequireAvailable(resp, dependencyLLM)
		t.RequireStatus(resp, http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity)
		if boundary.ContainsUnescaped(resp.Raw, boundary.XSSPayload) {
			t.Warnf("response echoes the script payload without escaping it")
		}
	})

	t.Run("SQL injection in location label", func(t *T) {
		resp := t.GenerateTour(tourWithLabel(boundary.SQLInjectionPayload))
		t.RequireAvailable(resp, dependencyLLM)
		t.RequireStatus(resp, http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	t.Run("very large payload", func(t *T) {
		resp := t.GenerateTour(tourWithLabel(boundary.Oversized(largeLabelLength)))
		t.RequireAvailable(resp, dependencyLLM)
		t.RequireStatus(resp, http.StatusOK, http.StatusBadRequest, http.StatusRequestEntityTooLarge)
	})
}
