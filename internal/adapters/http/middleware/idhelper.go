package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// idMiddlewareConfig configures the shared ID middleware behavior.
type idMiddlewareConfig struct {
	headerName string
	contextKey string

	// ctxSetter stores the id in the request context for downstream
	// propagation by client adapters.
	ctxSetter func(ctx context.Context, id string) context.Context

	// contextEnricher adds the id to the context logger.
	contextEnricher func(ctx context.Context, id string) context.Context
}

// createIDMiddleware extracts the ID from the configured header or
// generates a UUID, then stores it in the gin context, the request
// context, the response headers, and the context logger.
func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(cfg.contextKey, id)
		c.Header(cfg.headerName, id)

		ctx := c.Request.Context()
		if cfg.ctxSetter != nil {
			ctx = cfg.ctxSetter(ctx, id)
		}

		if cfg.contextEnricher != nil {
			ctx = cfg.contextEnricher(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// getIDFromContext extracts an ID from the gin context by key.
func getIDFromContext(c *gin.Context, key string) string {
	if id, exists := c.Get(key); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}

	return ""
}
