package tourtests

import (
	"net/http"

	"github.com/odysseywalk/tour-contract-tests/servicedef"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func DoStaticTourTests(t *T) {
	t.Run("list", func(t *T) {
		resp := t.Get(servicedef.PathTours)
		t.RequireStatus(resp, http.StatusOK)
		tours := t.RequireProperty(resp, "tours")
		assert.True(t, tours.IsArray(), "tours is not an array: %s", tours.Raw)
		if len(tours.Array()) == 0 {
			t.WarnNow("no static tours are installed")
		}
	})

	t.Run("get tour", func(t *T) {
		list := t.Get(servicedef.PathTours)
		t.RequireStatus(list, http.StatusOK)
		tourID := list.Get("tours.0.tourId").String()
		if tourID == "" {
			t.SkipWithReason("no static tours are installed")
		}

		resp := t.Get(servicedef.PathTour(tourID))
		t.RequireStatus(resp, http.StatusOK)
		t.RequireProperty(resp, "tour")
		assert.Equal(t, tourID, resp.Get("tour.tourId").String(), "wrong tour returned")
		assert.True(t, resp.Get("pois").IsArray(), "tour has no pois array")
	})

	t.Run("unknown tour", func(t *T) {
		resp := t.Get(servicedef.PathTour("invalid-tour-" + uuid.NewString()))
		t.RequireStatus(resp, http.StatusNotFound, http.StatusBadRequest)
	})
}
