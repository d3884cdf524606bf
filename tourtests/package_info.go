// Package tourtests contains the contract tests for the walking-tour service, and the
// domain-specific test API they are written against.
//
// Every test is a function that receives a *T. Tests are grouped by area (tour
// generation, text-to-speech, security, ...) with the same Run/subtest structure as Go's
// testing package, and make assertions with testify's assert and require packages.
package tourtests
