package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quotewall/quotewall/internal/adapters/http/dto"
	"github.com/quotewall/quotewall/internal/adapters/http/handlers"
	"github.com/quotewall/quotewall/internal/adapters/http/middleware"
	"github.com/quotewall/quotewall/internal/platform/telemetry"
	"github.com/quotewall/quotewall/internal/ports"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains everything the router wires together.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName labels traces and metrics.
	ServiceName string

	// Verifier authenticates bearer tokens on protected routes.
	Verifier ports.IdentityVerifier

	// QuoteHandler serves the quote endpoints.
	QuoteHandler *handlers.QuoteHandler

	// HealthHandler serves the internal /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// Timeout is the per-request deadline for API routes.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
//
// Middleware order: recovery first, then request/correlation IDs, CORS,
// tracing and metrics, and request logging. CORS sits before tracing so
// preflight requests stay out of the traces.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.CORS(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(cfg.ServiceName),
		middleware.Logging(cfg.Logger),
	)

	// A request with a known path but wrong verb gets an explicit 405.
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse("Method not allowed"))
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Not found"))
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	setupQuoteRoutes(apiV1, cfg)
}

// setupQuoteRoutes registers the quote endpoints. Reads are public,
// mutations require a verified bearer token.
func setupQuoteRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	quotes := cfg.QuoteHandler

	rg.GET("/quotes", quotes.List)
	rg.GET("/quotes/:id", quotes.Get)

	protected := rg.Group("")
	protected.Use(middleware.Authenticate(cfg.Verifier))

	// The update endpoint keeps its RPC shape and accepts POST and PUT.
	protected.POST("/quotes/update", quotes.Update)
	protected.PUT("/quotes/update", quotes.Update)

	protected.POST("/quotes", quotes.Create)
	protected.GET("/quotes/mine", quotes.ListMine)
	protected.DELETE("/quotes/:id", quotes.Delete)
}
