// Package auth implements the identity verifier port in two modes: local
// JWT validation and remote verification against the auth provider.
package auth

import "strings"

const bearerPrefix = "Bearer "

// extractBearer pulls the raw token out of an Authorization header value.
// Returns "" when the header is absent or not a bearer scheme.
func extractBearer(authorization string) string {
	if len(authorization) <= len(bearerPrefix) {
		return ""
	}

	if !strings.EqualFold(authorization[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(authorization[len(bearerPrefix):])
}
