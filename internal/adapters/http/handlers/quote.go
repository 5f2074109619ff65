package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotewall/quotewall/internal/adapters/http/dto"
	"github.com/quotewall/quotewall/internal/adapters/http/middleware"
	"github.com/quotewall/quotewall/internal/ports"
)

// decodeJSONBody decodes exactly one JSON value from the request body.
// Anything after the first value makes the whole body invalid, so a payload
// like `{}garbage` is rejected rather than silently truncated.
func decodeJSONBody(r io.Reader, v any) error {
	dec := json.NewDecoder(r)

	err := dec.Decode(v)
	if err != nil {
		return err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}

	return nil
}

// QuoteHandler exposes the quote endpoints.
type QuoteHandler struct {
	service ports.QuoteService
}

// NewQuoteHandler creates a new quote handler. Panics if service is nil.
func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	if service == nil {
		panic("QuoteHandler: service is required")
	}

	return &QuoteHandler{service: service}
}

// Update handles POST|PUT /api/v1/quotes/update.
//
// The endpoint predates the REST routes and keeps its RPC shape: the quote
// id travels in the body, and both POST and PUT are accepted.
func (h *QuoteHandler) Update(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msgUnauthorized))
		return
	}

	// Quota is consumed before the body is read: an over-quota caller gets
	// 429 no matter what they sent, and a malformed body still counts
	// against the window.
	if err := h.service.AllowUpdate(c.Request.Context(), identity); err != nil {
		RespondWithError(c, err)
		return
	}

	var req dto.UpdateQuoteRequest
	if err := decodeJSONBody(c.Request.Body, &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msgInvalidJSON))
		return
	}

	quote, err := h.service.UpdateQuote(
		c.Request.Context(),
		identity,
		dto.AsString(req.QuoteID),
		dto.AsString(req.QuoteText),
		dto.AsString(req.AuthorName),
	)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MutationResponse{
		Success: true,
		Message: "Quote updated successfully!",
		Quote:   dto.FromQuote(quote),
	})
}

// Create handles POST /api/v1/quotes.
func (h *QuoteHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msgUnauthorized))
		return
	}

	var req dto.CreateQuoteRequest
	if err := decodeJSONBody(c.Request.Body, &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msgInvalidJSON))
		return
	}

	quote, err := h.service.CreateQuote(
		c.Request.Context(),
		identity,
		dto.AsString(req.QuoteText),
		dto.AsString(req.AuthorName),
	)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MutationResponse{
		Success: true,
		Message: "Quote created successfully!",
		Quote:   dto.FromQuote(quote),
	})
}

// List handles GET /api/v1/quotes, the public gallery.
func (h *QuoteHandler) List(c *gin.Context) {
	quotes, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuotes(quotes))
}

// ListMine handles GET /api/v1/quotes/mine.
func (h *QuoteHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msgUnauthorized))
		return
	}

	quotes, err := h.service.ListMyQuotes(c.Request.Context(), identity)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuotes(quotes))
}

// Get handles GET /api/v1/quotes/:id. The response includes HTML-escaped
// display fields alongside the raw stored values.
func (h *QuoteHandler) Get(c *gin.Context) {
	quote, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuoteDetail(quote))
}

// Delete handles DELETE /api/v1/quotes/:id.
func (h *QuoteHandler) Delete(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msgUnauthorized))
		return
	}

	err := h.service.DeleteQuote(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MutationResponse{
		Success: true,
		Message: "Quote deleted successfully!",
	})
}
