package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/quotewall/quotewall/internal/adapters/http/middleware"
	"github.com/quotewall/quotewall/internal/platform/config"
	"github.com/quotewall/quotewall/internal/platform/logging"
)

const (
	instrumentationName = "github.com/quotewall/quotewall/internal/adapters/clients"

	// backoffJitterFactor spreads backoff by ±25%.
	backoffJitterFactor = 0.25

	defaultTimeout = 30 * time.Second

	transportMaxIdleConns        = 100
	transportMaxIdleConnsPerHost = 10
	transportIdleConnTimeout     = 90 * time.Second
)

// Config configures a client instance for one upstream service.
type Config struct {
	// BaseURL is the upstream base URL, e.g. "https://auth.example.com".
	BaseURL string

	// ServiceName identifies the upstream in logs, traces, and metrics.
	ServiceName string

	// Timeout is the per-attempt timeout. Wall-clock time may exceed it
	// across retries.
	Timeout time.Duration

	// Retry configures the exponential backoff retry policy.
	Retry config.RetryConfig

	// Circuit configures the circuit breaker.
	Circuit config.CircuitBreakerConfig

	// Logger is optional; slog.Default() is used when nil.
	Logger *slog.Logger
}

// Client wraps http.Client with retry, circuit breaking, OpenTelemetry
// instrumentation, and request/correlation ID propagation.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         *Config
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer trace.Tracer

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates an instrumented client for the upstream named in cfg.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("upstream", cfg.ServiceName),
	)

	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        transportMaxIdleConns,
				MaxIdleConnsPerHost: transportMaxIdleConnsPerHost,
				IdleConnTimeout:     transportIdleConnTimeout,
			},
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		cfg:             cfg,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// Do executes a request with retry, circuit breaking, tracing, and logging.
//
// Retries only rewind bodies when req.GetBody is set, so POST/PUT with
// streaming bodies should cap MaxAttempts at 1.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("upstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	c.injectIDs(ctx, req)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, lastErr := c.executeWithRetry(ctx, req, logger, startTime)

	return c.recordResult(ctx, req, resp, lastErr, span, logger, startTime)
}

// Get performs a GET with optional extra headers, such as a forwarded
// Authorization header.
func (c *Client) Get(ctx context.Context, path string, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	return c.Do(ctx, req)
}

// Post performs a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// CircuitState returns the breaker state, exposed for health reporting.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

func (c *Client) executeWithRetry(
	ctx context.Context,
	req *http.Request,
	logger *slog.Logger,
	startTime time.Time,
) (*http.Response, error) {
	var (
		lastErr error
		resp    *http.Response
	)

	for attempt := 0; attempt < c.cfg.Retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, req, attempt, logger, startTime); err != nil {
				return nil, err
			}
		}

		resp, lastErr = c.http.Do(req.WithContext(ctx))

		shouldRetry, retryErr := c.handleAttemptResult(resp, lastErr, attempt, logger)
		if shouldRetry {
			lastErr = retryErr
			continue
		}

		if lastErr != nil {
			break
		}

		return resp, nil
	}

	return nil, lastErr
}

func (c *Client) waitForRetry(
	ctx context.Context,
	req *http.Request,
	attempt int,
	logger *slog.Logger,
	startTime time.Time,
) error {
	backoff := c.calculateBackoff(attempt)
	logger.Debug("retrying request",
		slog.Int("attempt", attempt+1),
		slog.Duration("backoff", backoff),
	)

	select {
	case <-ctx.Done():
		c.cb.RecordFailure()
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "context_canceled")

		return ctx.Err()
	case <-time.After(backoff):
	}

	return nil
}

// handleAttemptResult decides whether the attempt should be retried.
func (c *Client) handleAttemptResult(
	resp *http.Response,
	err error,
	attempt int,
	logger *slog.Logger,
) (bool, error) {
	if err != nil {
		if isRetryableError(err) {
			logger.Debug("request failed with retryable error",
				slog.Int("attempt", attempt+1),
				slog.Any("error", err),
			)

			return true, err
		}

		return false, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		logger.Debug("request failed with server error",
			slog.Int("attempt", attempt+1),
			slog.Int("status", resp.StatusCode),
		)

		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("failed to close response body", slog.Any("error", closeErr))
		}

		return true, fmt.Errorf("server error: %d", resp.StatusCode)
	}

	return false, nil
}

func (c *Client) recordResult(
	ctx context.Context,
	req *http.Request,
	resp *http.Response,
	lastErr error,
	span trace.Span,
	logger *slog.Logger,
	startTime time.Time,
) (*http.Response, error) {
	duration := time.Since(startTime)

	if lastErr != nil {
		c.cb.RecordFailure()
		span.SetStatus(codes.Error, lastErr.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.Error("request failed",
			slog.Duration("duration", duration),
			slog.Any("error", lastErr),
		)

		return nil, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
	}

	c.cb.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	statusCategory := fmt.Sprintf("%dxx", resp.StatusCode/100)
	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, statusCategory)

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// injectIDs propagates the request and correlation IDs to the upstream.
func (c *Client) injectIDs(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff returns exponential backoff with symmetric jitter,
// capped at MaxInterval.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := float64(c.cfg.Retry.InitialInterval) * math.Pow(c.cfg.Retry.Multiplier, float64(attempt))

	if backoff > float64(c.cfg.Retry.MaxInterval) {
		backoff = float64(c.cfg.Retry.MaxInterval)
	}

	jitterMultiplier := rand.Float64()*2 - 1 //nolint:gosec // No need for crypto-grade randomness
	backoff += backoff * backoffJitterFactor * jitterMultiplier

	return time.Duration(backoff)
}

func (c *Client) recordMetrics(
	ctx context.Context,
	method string,
	statusCode int,
	duration time.Duration,
	result string,
) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// isRetryableError reports whether the transport error is worth retrying.
// Context cancellation is terminal; timeouts and connection errors are not.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
