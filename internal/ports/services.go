package ports

import (
	"context"

	"github.com/quotewall/quotewall/internal/domain"
)

// QuoteService is the application-layer surface the HTTP handlers depend on.
type QuoteService interface {
	// AllowUpdate consumes one unit of the caller's edit quota. It runs
	// before the request body is read, so over-quota callers are rejected
	// ahead of any parsing.
	AllowUpdate(ctx context.Context, identity *Identity) error

	// UpdateQuote edits a quote the caller owns. The sequence is validate,
	// owner-filtered fetch, owner-filtered write; quota is consumed by
	// AllowUpdate beforehand.
	UpdateQuote(ctx context.Context, identity *Identity, quoteID, text, author string) (*domain.Quote, error)

	// CreateQuote inserts a new quote owned by the caller.
	CreateQuote(ctx context.Context, identity *Identity, text, author string) (*domain.Quote, error)

	// ListQuotes returns the shared gallery, newest first.
	ListQuotes(ctx context.Context) ([]domain.Quote, error)

	// ListMyQuotes returns the caller's quotes, newest first.
	ListMyQuotes(ctx context.Context, identity *Identity) ([]domain.Quote, error)

	// GetQuote returns one quote regardless of owner.
	GetQuote(ctx context.Context, id string) (*domain.Quote, error)

	// DeleteQuote removes a quote the caller owns.
	DeleteQuote(ctx context.Context, identity *Identity, id string) error
}
