package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotewall/quotewall/internal/adapters/http/dto"
	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/platform/logging"
)

// Fixed messages for error classes whose details must not reach clients.
const (
	msgUnauthorized = "Unauthorized: Invalid or missing token"
	msgRateLimited  = "Rate limit exceeded. Please try again later."
	msgUnavailable  = "Service temporarily unavailable"
	msgInternal     = "Internal server error"
	msgInvalidJSON  = "Invalid JSON in request body"
)

// MapDomainError maps a domain error to an HTTP status and error envelope.
//
// Validation and not-found errors carry client-facing messages and pass
// through verbatim. Unauthorized, rate-limit, and unavailable classes map
// to fixed messages. Internal errors expose only their safe summary.
func MapDomainError(err error) (int, *dto.ErrorResponse) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, dto.NewErrorResponse(err.Error())

	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, dto.NewErrorResponse(msgUnauthorized)

	case domain.IsNotFound(err):
		return http.StatusNotFound, dto.NewErrorResponse(err.Error())

	case domain.IsRateLimited(err):
		return http.StatusTooManyRequests, dto.NewErrorResponse(msgRateLimited)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, dto.NewErrorResponse(msgUnavailable)

	case domain.IsInternal(err):
		return http.StatusInternalServerError, dto.NewErrorResponse(err.Error())

	default:
		return http.StatusInternalServerError, dto.NewErrorResponse(msgInternal)
	}
}

// RespondWithError writes the mapped error response. Server-side failures
// are logged; their cause never reaches the client.
func RespondWithError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			"status", status,
			"error", err,
		)
	}

	c.JSON(status, resp)
}
