package dto

import (
	"time"

	"github.com/quotewall/quotewall/internal/domain"
)

// UpdateQuoteRequest is the edit payload. Fields are declared as any so a
// payload carrying the wrong JSON type reads as an absent field instead of
// failing the whole decode.
type UpdateQuoteRequest struct {
	QuoteID    any `json:"quote_id"`
	QuoteText  any `json:"quote_text"`
	AuthorName any `json:"author_name"`
}

// CreateQuoteRequest is the submission payload.
type CreateQuoteRequest struct {
	QuoteText  any `json:"quote_text"`
	AuthorName any `json:"author_name"`
}

// AsString coerces a decoded JSON value to a string. Non-string values,
// including numbers and null, coerce to "".
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// QuoteResponse is the wire representation of a quote.
type QuoteResponse struct {
	ID         string    `json:"id"`
	QuoteText  string    `json:"quote_text"`
	AuthorName string    `json:"author_name"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// QuoteDetailResponse extends QuoteResponse with HTML-escaped display
// fields for direct interpolation into markup.
type QuoteDetailResponse struct {
	QuoteResponse

	DisplayText   string `json:"display_text"`
	DisplayAuthor string `json:"display_author"`
}

// MutationResponse is the success envelope for quote mutations.
type MutationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Quote   *QuoteResponse `json:"quote,omitempty"`
}

// QuoteListResponse wraps a list of quotes.
type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}

// FromQuote converts a domain quote to its wire representation.
func FromQuote(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:         q.ID,
		QuoteText:  q.QuoteText,
		AuthorName: q.AuthorName,
		UserID:     q.UserID,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// FromQuoteDetail converts a domain quote including escaped display fields.
func FromQuoteDetail(q *domain.Quote) *QuoteDetailResponse {
	return &QuoteDetailResponse{
		QuoteResponse: *FromQuote(q),
		DisplayText:   domain.SanitizeText(q.QuoteText),
		DisplayAuthor: domain.SanitizeText(q.AuthorName),
	}
}

// FromQuotes converts a list of domain quotes.
func FromQuotes(quotes []domain.Quote) QuoteListResponse {
	out := QuoteListResponse{Quotes: make([]QuoteResponse, 0, len(quotes))}
	for i := range quotes {
		out.Quotes = append(out.Quotes, *FromQuote(&quotes[i]))
	}

	return out
}
