// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quotewall/quotewall/internal/adapters/auth"
	"github.com/quotewall/quotewall/internal/adapters/clients"
	"github.com/quotewall/quotewall/internal/adapters/http"
	"github.com/quotewall/quotewall/internal/adapters/http/handlers"
	"github.com/quotewall/quotewall/internal/adapters/ratelimit"
	"github.com/quotewall/quotewall/internal/adapters/storage"
	"github.com/quotewall/quotewall/internal/app"
	"github.com/quotewall/quotewall/internal/platform/config"
	"github.com/quotewall/quotewall/internal/platform/logging"
	"github.com/quotewall/quotewall/internal/platform/telemetry"
	"github.com/quotewall/quotewall/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Open the record store and create the quote repository
	db, err := storage.Open(ctx, storage.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	}, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	quoteRepo := storage.NewGormQuoteRepository(db)

	if err := healthRegistry.Register(quoteRepo); err != nil {
		return fmt.Errorf("registering database health check: %w", err)
	}

	// 7. Create the identity verifier for the configured auth mode
	verifier, err := buildVerifier(cfg, logger, healthRegistry)
	if err != nil {
		return fmt.Errorf("creating identity verifier: %w", err)
	}

	// 8. Create the per-user update quota limiter
	limiter := ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// 9. Create quote service (application layer)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Repo:    quoteRepo,
		Limiter: limiter,
		Logger:  logger,
	})

	// 10. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// 11. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 12. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		Verifier:      verifier,
		QuoteHandler:  quoteHandler,
		HealthHandler: healthHandler,
		Timeout:       http.DefaultRequestTimeout,
	})

	// 13. Start server (non-blocking)
	serverErr := server.Start()

	// 14. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// buildVerifier creates the identity verifier selected by auth.mode.
// The remote verifier is also registered as a health checker since it
// depends on an upstream service; the JWT verifier is purely local.
func buildVerifier(
	cfg *config.Config,
	logger *slog.Logger,
	registry ports.HealthRegistry,
) (ports.IdentityVerifier, error) {
	if cfg.Auth.Mode == "jwt" {
		return auth.NewJWTVerifier(cfg.Auth.Secret), nil
	}

	authClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Auth.BaseURL,
		ServiceName: "auth-provider",
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating auth client: %w", err)
	}

	verifier := auth.NewRemoteVerifier(authClient, logger)

	if err := registry.Register(verifier); err != nil {
		return nil, fmt.Errorf("registering auth provider health check: %w", err)
	}

	return verifier, nil
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
