package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotewall/quotewall/internal/platform/config"
)

func newTestClient(t *testing.T, baseURL string, maxAttempts int) *Client {
	t.Helper()

	client, err := New(&Config{
		BaseURL:     baseURL,
		ServiceName: "auth-provider",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     maxAttempts,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	})
	require.NoError(t, err)

	return client
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New(&Config{BaseURL: "http://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service name")
}

func TestGet_ForwardsHeaders(t *testing.T) {
	var gotAuth atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 1)

	headers := http.Header{}
	headers.Set("Authorization", "Bearer token-123")

	resp, err := client.Get(context.Background(), "/auth/v1/user", headers)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer token-123", gotAuth.Load())
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 3)

	resp, err := client.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 3)

	resp, err := client.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_ExhaustedRetriesWrapError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 2)

	_, err := client.Get(context.Background(), "/", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
}

func TestDo_CircuitOpenBlocksRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, 1)

	// Five exhausted requests trip the breaker.
	for i := 0; i < 5; i++ {
		_, err := client.Get(context.Background(), "/", nil)
		require.Error(t, err)
	}

	assert.Equal(t, StateOpen, client.CircuitState())

	_, err := client.Get(context.Background(), "/", nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCalculateBackoff_CapsAtMaxInterval(t *testing.T) {
	client := newTestClient(t, "http://localhost", 1)

	// Far attempt should sit within jitter range of the cap.
	backoff := client.calculateBackoff(20)

	maxWithJitter := time.Duration(float64(5*time.Millisecond) * (1 + backoffJitterFactor))
	assert.LessOrEqual(t, backoff, maxWithJitter)
	assert.Positive(t, backoff)
}
