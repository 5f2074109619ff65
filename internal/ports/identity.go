package ports

import "context"

// Identity is a verified user identity produced from a bearer credential.
type Identity struct {
	// UserID is the stable identifier used for ownership and rate limiting.
	UserID string

	// Email is informational only; it never participates in authorization.
	Email string
}

// IdentityVerifier turns a bearer credential into a trusted identity.
// Implementations must return domain.ErrUnauthorized for missing, malformed,
// or expired credentials, and domain.ErrUnavailable when the verification
// backend cannot be reached.
type IdentityVerifier interface {
	// Verify validates the raw Authorization header value (including the
	// "Bearer " prefix) and returns the identity it asserts.
	Verify(ctx context.Context, authorization string) (*Identity, error)
}
