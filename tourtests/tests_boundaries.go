package tourtests

import (
	"fmt"
	"net/http"

	"github.com/odysseywalk/tour-contract-tests/boundary"
	"github.com/odysseywalk/tour-contract-tests/servicedef"
)

var durationRange = boundary.IntRange{Min: servicedef.MinDurationMin, Max: servicedef.MaxDurationMin}

func DoBoundaryTests(t *T) {
	t.Run("duration", func(t *T) {
		for _, c := range durationRange.WithInner().Boundaries() {
			t.Run(fmt.Sprintf("%d minutes", c.Value), func(t *T) {
				resp := t.GenerateTour(tourFrom(sanFrancisco, "Test", "history", c.Value))
				t.RequireAvailable(resp, dependencyLLM)
				t.RequireStatus(resp, expectedStatus(c.Valid))
			})
		}
	})

	t.Run("coordinates", func(t *T) {
		for _, c := range boundary.CoordinateBoundaries() {
			t.Run(c.Coordinate.String(), func(t *T) {
				at := servicedef.LatLng{Lat: c.Lat, Lng: c.Lng}
				resp := t.GenerateTour(tourFrom(at, "Boundary", "history", 30))
				t.RequireAvailable(resp, dependencyLLM)
				t.RequireStatus(resp, expectedStatus(c.Valid))
			})
		}
	})
}

func expectedStatus(valid bool) int {
	if valid {
		return http.StatusOK
	}
	return http.StatusBadRequest
}
