package ports

// RateLimiter bounds the frequency of mutating calls per identity.
// Implementations are constructed once per process; a denied call must not
// consume additional quota beyond the check itself.
//
// The port exists so the in-memory limiter can be swapped for a shared
// counter store in a multi-instance deployment.
type RateLimiter interface {
	// Allow reports whether the keyed caller may proceed, recording the
	// attempt against the current window when it does.
	Allow(key string) bool
}
