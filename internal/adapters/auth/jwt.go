package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/ports"
)

// identityClaims carries the subject plus the email claim the auth
// provider embeds in its access tokens.
type identityClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
}

// JWTVerifier validates HS256 access tokens locally against a shared
// signing secret. The token subject is the user id.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for the given signing secret.
// Panics on an empty secret, it is a deployment configuration error.
func NewJWTVerifier(secret string) *JWTVerifier {
	if secret == "" {
		panic("JWTVerifier: signing secret is required")
	}

	return &JWTVerifier{secret: []byte(secret)}
}

// Verify implements ports.IdentityVerifier.
func (v *JWTVerifier) Verify(_ context.Context, authorization string) (*ports.Identity, error) {
	tokenString := extractBearer(authorization)
	if tokenString == "" {
		return nil, domain.NewUnauthorizedError("missing bearer token")
	}

	claims := &identityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.NewUnauthorizedError("token expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.NewUnauthorizedError("invalid token signature")
		default:
			return nil, domain.NewUnauthorizedError("malformed token")
		}
	}

	if !token.Valid || claims.Subject == "" {
		return nil, domain.NewUnauthorizedError("token has no subject")
	}

	return &ports.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}
