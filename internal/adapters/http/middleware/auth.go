package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotewall/quotewall/internal/adapters/http/dto"
	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/platform/logging"
	"github.com/quotewall/quotewall/internal/ports"
)

// ContextKeyIdentity is the gin context key for the verified identity.
const ContextKeyIdentity = "identity"

// Authenticate returns middleware that resolves the Authorization header
// through the identity verifier before any handler work happens. A request
// without a valid token is rejected with 401 and a fixed message, so
// callers cannot distinguish missing, malformed, and expired tokens.
func Authenticate(verifier ports.IdentityVerifier) gin.HandlerFunc {
	if verifier == nil {
		panic("Authenticate: verifier is required")
	}

	return func(c *gin.Context) {
		identity, err := verifier.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if domain.IsUnavailable(err) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable,
					dto.NewErrorResponse("Service temporarily unavailable"))
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Unauthorized: Invalid or missing token"))

			return
		}

		c.Set(ContextKeyIdentity, identity)

		ctx := logging.WithUserID(c.Request.Context(), identity.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// IdentityFromContext returns the verified identity set by Authenticate.
// The bool is false on routes where the middleware did not run.
func IdentityFromContext(c *gin.Context) (*ports.Identity, bool) {
	v, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil, false
	}

	identity, ok := v.(*ports.Identity)

	return identity, ok
}
