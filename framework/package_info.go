// Package framework contains the low-level implementation of the contract-test harness,
// independent of the service being tested.
//
// The general model is:
//
// 1. The harness talks to an already-running service over HTTP through a ServiceClient,
// which turns every request into a normalized Response, including requests that never
// got an HTTP response at all.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// pass/warning/failure results. A panic inside a test fails that test only.
//
// 3. Results are collected into a Results value that is returned from Run, printed with
// PrintResults, and optionally exported as JSON or Prometheus metrics.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the requests to send and the expectations for each response, on top of the test context.
package framework
