package tourtests

import (
	"net/http"
	"strings"
)

// landingPageMarker is text that the landing page is expected to contain.
const landingPageMarker = "Walking Tours"

func DoPageRouteTests(t *T) {
	for _, route := range t.Config().PageRoutes {
		t.Run(route.Name, func(t *T) {
			resp := t.Get(route.Path)
			t.ExpectStatusOrWarn(resp, http.StatusOK)
			if route.Path == "/" && !strings.Contains(string(resp.Raw), landingPageMarker) {
				t.Warnf("landing page does not mention %q", landingPageMarker)
			}
		})
	}
}
