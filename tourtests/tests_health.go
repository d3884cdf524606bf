package tourtests

import (
	"net/http"

	"github.com/odysseywalk/tour-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

var healthConfigFlags = []struct {
	property, name string
}{
	{"mapsKeyPresent", "Maps API"},
	{"openRouterConfigured", "OpenRouter"},
	{"gradiumConfigured", "Gradium TTS"},
}

func DoHealthTests(t *T) {
	t.Run("health endpoint accessible", func(t *T) {
		resp := t.Get(servicedef.PathHealth)
		t.RequireStatus(resp, http.StatusOK)
		t.RequireProperty(resp, "ok")
	})

	t.Run("API keys not exposed", func(t *T) {
		resp := t.Get(servicedef.PathHealth)
		t.RequireStatus(resp, http.StatusOK)
		for _, name := range servicedef.SecretEnvNames {
			assert.NotContains(t, string(resp.Raw), name, "health response mentions %s", name)
		}
	})

	for _, flag := range healthConfigFlags {
		t.Run(flag.name+" configured", func(t *T) {
			resp := t.Get(servicedef.PathHealth)
			t.RequireStatus(resp, http.StatusOK)
			value := t.RequireProperty(resp, flag.property)
			if !value.Bool() {
				t.WarnNow("%s is not configured (%s=%s); the service will use fallbacks", flag.name, flag.property, value.Raw)
			}
		})
	}

	t.Run("health warnings", func(t *T) {
		resp := t.Get(servicedef.PathHealth)
		t.RequireStatus(resp, http.StatusOK)
		for _, w := range resp.Get("warnings").Array() {
			t.Warnf("service reports: %s", w.String())
		}
	})

	t.Run("TTS status", func(t *T) {
		resp := t.Get(servicedef.PathTTSStatus)
		t.RequireStatus(resp, http.StatusOK)
		t.RequireProperty(resp, "gradiumConfigured")
		t.RequireProperty(resp, "env")
		for _, name := range servicedef.SecretEnvNames {
			assert.NotContains(t, string(resp.Raw), name+"=", "TTS status response leaks the value of %s", name)
		}
	})
}
