package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/quotewall/quotewall/internal/adapters/http/dto"
	"github.com/quotewall/quotewall/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics, logs the stack
// trace, and responds with a plain 500 envelope. Apply it first in the
// chain so it covers everything after it.
func Recovery(_ *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()

				logging.FromContext(c.Request.Context()).Error("panic recovered",
					slog.Any("error", r),
					slog.String("stack", string(stack)),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
				)

				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError,
						dto.NewErrorResponse("Internal server error"))
				} else {
					c.Abort()
				}
			}
		}()

		c.Next()
	}
}
