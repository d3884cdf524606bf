package tourtests

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/odysseywalk/tour-contract-tests/framework"
	"github.com/odysseywalk/tour-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minIntroLength is the shortest intro that is plausibly a real welcome script rather than
// the service's placeholder text.
const minIntroLength = 50

func DoTourGenerationTests(t *T) {
	t.Run("valid request", func(t *T) {
		resp := t.GenerateTour(validTourParams())
		t.requireGeneratedTour(resp)

		t.Run("session id", func(t *T) {
			assert.NotEmpty(t, resp.Get("sessionId").String(), "sessionId is empty")
		})
		t.Run("POI count", func(t *T) {
			assertPOICount(t, resp)
		})
		t.Run("intro", func(t *T) {
			intro := t.RequireProperty(resp, "tourPlan.intro").String()
			assert.Greater(t, len(intro), minIntroLength, "intro is too short: %q", intro)
		})
		t.Run("outro", func(t *T) {
			assert.NotEmpty(t, t.RequireProperty(resp, "tourPlan.outro").String(), "outro is empty")
		})
		t.Run("route points", func(t *T) {
			points := t.RequireProperty(resp, "tourPlan.routePoints").Array()
			assert.GreaterOrEqual(t, len(points), servicedef.MinRoutePoints,
				"a route needs at least the start, one stop, and the end")
		})
		t.Run("distance", func(t *T) {
			distance := t.RequireProperty(resp, "tourPlan.distanceMeters").Float()
			assert.Greater(t, distance, 0.0, "distanceMeters must be positive")
		})
	})

	t.Run("identical requests create distinct sessions", func(t *T) {
		first := t.GenerateTour(validTourParams())
		t.requireGeneratedTour(first)
		second := t.GenerateTour(validTourParams())
		t.requireGeneratedTour(second)

		id1, id2 := first.Get("sessionId").String(), second.Get("sessionId").String()
		require.NotEmpty(t, id1)
		assert.NotEqual(t, id1, id2, "two generated tours share a session id")
		for _, path := range []string{"tourPlan.intro", "tourPlan.outro", "tourPlan.routePoints", "pois"} {
			assert.Equal(t, first.Get(path).Type, second.Get(path).Type, "%s has a different shape", path)
		}
		assertPOICount(t, second)
	})

	t.Run("minimum duration", func(t *T) {
		resp := t.GenerateTour(servicedef.TourGenerateParams{
			Start:       servicedef.Start(newYork.Lat, newYork.Lng, "NYC"),
			Theme:       "food",
			DurationMin: servicedef.Minutes(servicedef.MinDurationMin),
			Lang:        "en",
		})
		t.requireGeneratedTour(resp)
		t.Debug("POIs: %d", resp.Get("pois.#").Int())
	})

	t.Run("maximum duration", func(t *T) {
		resp := t.GenerateTour(servicedef.TourGenerateParams{
			Start:       servicedef.Start(london.Lat, london.Lng, "London"),
			Theme:       "art",
			DurationMin: servicedef.Minutes(servicedef.MaxDurationMin),
			Lang:        "en",
		})
		t.requireGeneratedTour(resp)
		t.Debug("POIs: %d", resp.Get("pois.#").Int())
	})

	t.Run("invalid coordinates rejected", func(t *T) {
		resp := t.GenerateTour(tourFrom(servicedef.LatLng{Lat: 999, Lng: -999}, "Invalid", "history", 30))
		t.RequireAvailable(resp, dependencyLLM)
		t.RequireStatus(resp, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	t.Run("missing start rejected", func(t *T) {
		resp := t.GenerateTour(servicedef.TourGenerateParams{
			Theme:       "history",
			DurationMin: servicedef.Minutes(30),
		})
		t.RequireAvailable(resp, dependencyLLM)
		t.RequireStatus(resp, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	t.Run("missing fields rejected", func(t *T) {
		resp := t.GenerateTour(servicedef.TourGenerateParams{
			Start: &servicedef.StartLocation{Lat: sanFrancisco.Lat, Lng: sanFrancisco.Lng},
		})
		t.RequireAvailable(resp, dependencyLLM)
		t.RequireStatus(resp, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	t.Run("empty label", func(t *T) {
		resp := t.GenerateTour(tourWithLabel(""))
		t.RequireAvailable(resp, dependencyLLM)
		t.AcceptUnderdetermined(resp, http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity)
	})

	t.Run("themes", func(t *T) {
		for _, theme := range servicedef.Themes {
			t.Run(theme, func(t *T) {
				resp := t.GenerateTour(tourFrom(sanFrancisco, "Test "+theme, theme, 20))
				t.RequireAvailable(resp, dependencyLLM)
				t.ExpectStatusOrWarn(resp, http.StatusOK)
			})
		}
	})

	t.Run("languages", func(t *T) {
		for _, lang := range servicedef.Languages {
			t.Run(lang, func(t *T) {
				p := tourFrom(paris, "Paris", "history", 25)
				p.Lang = lang
				resp := t.GenerateTour(p)
				t.RequireAvailable(resp, dependencyLLM)
				t.ExpectStatusOrWarn(resp, http.StatusOK)
			})
		}
	})

	t.Run("voice styles", func(t *T) {
		for _, voice := range servicedef.VoiceStyles {
			t.Run(voice, func(t *T) {
				p := tourFrom(sanFrancisco, "SF", "history", 25)
				p.VoiceStyle = voice
				resp := t.GenerateTour(p)
				t.RequireAvailable(resp, dependencyLLM)
				t.ExpectStatusOrWarn(resp, http.StatusOK)
			})
		}
	})

	t.Run("very long location name", func(t *T) {
		resp := t.GenerateTour(tourWithLabel(strings.Repeat("A", 500)))
		t.RequireAvailable(resp, dependencyLLM)
		t.ExpectStatusOrWarn(resp, http.StatusOK)
	})
}

// requireGeneratedTour exits the test unless resp is a successfully generated tour.
func (t *T) requireGeneratedTour(resp framework.Response) {
	t.RequireAvailable(resp, dependencyLLM)
	t.RequireStatus(resp, http.StatusOK)
	t.RequireProperty(resp, "sessionId")
	t.RequireProperty(resp, "tourPlan")
	t.RequireProperty(resp, "pois")
}

func assertPOICount(t *T, resp framework.Response) {
	n := int(resp.Get("pois.#").Int())
	assert.True(t, n >= servicedef.MinPOIs && n <= servicedef.MaxPOIs,
		fmt.Sprintf("expected %d to %d POIs, got %d", servicedef.MinPOIs, servicedef.MaxPOIs, n))
}
