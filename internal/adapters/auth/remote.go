package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/quotewall/quotewall/internal/adapters/clients"
	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/ports"
)

const (
	// userEndpoint is the auth provider endpoint that resolves a bearer
	// token to the user it belongs to.
	userEndpoint = "/auth/v1/user"

	authServiceName = "auth-provider"
)

// remoteUser is the subset of the provider's user payload we consume.
type remoteUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// RemoteVerifier resolves bearer tokens by forwarding them to the auth
// provider's user endpoint. The Authorization header is passed through
// verbatim, the provider owns token semantics.
type RemoteVerifier struct {
	client *clients.Client
	logger *slog.Logger
}

// NewRemoteVerifier creates a verifier on the given upstream client.
// Panics if client is nil.
func NewRemoteVerifier(client *clients.Client, logger *slog.Logger) *RemoteVerifier {
	if client == nil {
		panic("RemoteVerifier: client is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &RemoteVerifier{client: client, logger: logger}
}

// Verify implements ports.IdentityVerifier.
func (v *RemoteVerifier) Verify(ctx context.Context, authorization string) (*ports.Identity, error) {
	if extractBearer(authorization) == "" {
		return nil, domain.NewUnauthorizedError("missing bearer token")
	}

	headers := http.Header{}
	headers.Set("Authorization", authorization)

	resp, err := v.client.Get(ctx, userEndpoint, headers)
	if err != nil {
		if errors.Is(err, clients.ErrCircuitOpen) {
			return nil, domain.NewUnavailableError(authServiceName, "circuit open")
		}

		v.logger.ErrorContext(ctx, "auth provider unreachable",
			slog.Any("error", err),
		)

		return nil, domain.NewUnavailableError(authServiceName, "request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to decode.

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.NewUnauthorizedError("token rejected by auth provider")

	default:
		return nil, domain.NewUnavailableError(authServiceName,
			fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var user remoteUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, domain.NewUnavailableError(authServiceName, "malformed user payload")
	}

	if user.ID == "" {
		return nil, domain.NewUnauthorizedError("auth provider returned no user id")
	}

	return &ports.Identity{UserID: user.ID, Email: user.Email}, nil
}

// Name implements ports.HealthChecker.
func (v *RemoteVerifier) Name() string {
	return authServiceName
}

// Check implements ports.HealthChecker. The circuit breaker state stands
// in for a live probe so health checks do not generate upstream traffic.
func (v *RemoteVerifier) Check(context.Context) error {
	if v.client.CircuitState() == clients.StateOpen {
		return errors.New("auth provider circuit open")
	}

	return nil
}
