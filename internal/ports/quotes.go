// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnauthorized, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"
	"time"

	"github.com/quotewall/quotewall/internal/domain"
)

// QuoteRepository is the record store contract for quote persistence.
// Owner-filtered methods combine the quote id and the owner id in a single
// filter so existence and ownership are never distinguishable to callers.
type QuoteRepository interface {
	// Create inserts a new quote. The caller assigns id and timestamps.
	Create(ctx context.Context, quote *domain.Quote) error

	// GetByID retrieves a quote regardless of owner.
	// Returns domain.ErrNotFound if no row matches.
	GetByID(ctx context.Context, id string) (*domain.Quote, error)

	// GetByIDAndOwner retrieves a quote filtered by id AND owner.
	// Returns domain.ErrNotFound if no row matches either filter.
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Quote, error)

	// ListAll returns every quote, newest first.
	ListAll(ctx context.Context) ([]domain.Quote, error)

	// ListByOwner returns the owner's quotes, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Quote, error)

	// UpdateOwned writes quote_text, author_name, and updated_at together,
	// filtered by id AND owner. The three fields are written atomically;
	// zero rows affected returns domain.ErrNotFound.
	UpdateOwned(ctx context.Context, id, ownerID, text, author string, updatedAt time.Time) (*domain.Quote, error)

	// DeleteOwned removes a quote filtered by id AND owner.
	// Returns domain.ErrNotFound if no row matches either filter.
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
