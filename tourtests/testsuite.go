package tourtests

import (
	"github.com/odysseywalk/tour-contract-tests/config"
	"github.com/odysseywalk/tour-contract-tests/framework"
)

// RunTestSuite runs every contract test against the service that client talks to. repro may
// be nil.
func RunTestSuite(
	client *framework.ServiceClient,
	cfg config.Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
	repro ReproRecorder,
) framework.Results {
	env := &environment{client: client, config: cfg, repro: repro}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("health", DoHealthTests)
		t.Run("tour generation", DoTourGenerationTests)
		t.Run("boundaries", DoBoundaryTests)
		t.Run("text to speech", DoTTSTests)
		t.Run("question answering", DoQATests)
		t.Run("speech to text", DoSTTTests)
		t.Run("static tours", DoStaticTourTests)
		t.Run("page routes", DoPageRouteTests)
		t.Run("error handling", DoErrorHandlingTests)
		t.Run("security", DoSecurityTests)
		t.Run("performance", DoPerformanceTests)
		t.Run("load", DoLoadTests)
	})
}
