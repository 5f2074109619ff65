package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// SimpleTimeout returns middleware that sets a deadline on the request
// context. Handlers doing context-aware work fail with the deadline; the
// middleware does not attempt to abort handlers that ignore it.
func SimpleTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
