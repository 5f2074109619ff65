// Package clients provides the instrumented HTTP client used to call
// upstream services such as the auth provider.
package clients

import "errors"

// Infrastructure failures of the client layer. Callers translate these
// into domain errors.
var (
	// ErrCircuitOpen is returned while the circuit breaker is blocking requests.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded is returned after all retry attempts are exhausted.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
