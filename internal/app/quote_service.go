// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/ports"
)

// QuoteService orchestrates the quote use cases: the authorized update path
// plus the create/browse/delete surface around it. It depends on port
// interfaces, not concrete implementations.
type QuoteService struct {
	repo    ports.QuoteRepository
	limiter ports.RateLimiter
	logger  *slog.Logger

	// now and newID are overridable for tests.
	now   func() time.Time
	newID func() string
}

// QuoteServiceConfig contains the service dependencies.
type QuoteServiceConfig struct {
	Repo    ports.QuoteRepository
	Limiter ports.RateLimiter
	Logger  *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if Repo or Limiter is nil. Defaults logger to slog.Default() if nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repo == nil {
		panic("QuoteService: Repo is required")
	}

	if cfg.Limiter == nil {
		panic("QuoteService: Limiter is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		repo:    cfg.Repo,
		limiter: cfg.Limiter,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// AllowUpdate consumes one unit of the caller's edit quota, returning
// domain.ErrRateLimited when the window is exhausted. Handlers call this
// before touching the request body, so an over-quota caller is turned away
// without the body ever being parsed.
func (s *QuoteService) AllowUpdate(ctx context.Context, identity *ports.Identity) error {
	if !s.limiter.Allow(identity.UserID) {
		s.logger.WarnContext(ctx, "rate limit exceeded",
			slog.String("user_id", identity.UserID),
		)

		return domain.ErrRateLimited
	}

	return nil
}

// UpdateQuote is the single authorized mutation path for editing a quote.
//
// The caller has already been authenticated and admitted by AllowUpdate;
// from here the sequence is validate, owner-filtered fetch, owner-filtered
// atomic write. Either all three of quote_text, author_name, and updated_at
// are written together or nothing is.
func (s *QuoteService) UpdateQuote(
	ctx context.Context,
	identity *ports.Identity,
	quoteID, rawText, rawAuthor string,
) (*domain.Quote, error) {
	if quoteID == "" {
		return nil, domain.NewValidationError("quote_id", "Quote ID is required")
	}

	text, err := domain.ValidateUpdateText(rawText)
	if err != nil {
		return nil, err
	}

	author := domain.ResolveAuthorName(rawAuthor)

	// Owner-filtered fetch: a quote owned by someone else and a quote that
	// does not exist are indistinguishable from here on.
	_, err = s.repo.GetByIDAndOwner(ctx, quoteID, identity.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrQuoteNotAccessible
		}

		s.logger.ErrorContext(ctx, "failed to verify quote ownership",
			slog.String("quote_id", quoteID),
			slog.Any("error", err),
		)

		return nil, domain.NewInternalError("Failed to verify quote ownership", err)
	}

	// The write repeats the owner filter to close the race between the
	// fetch above and this statement.
	updated, err := s.repo.UpdateOwned(ctx, quoteID, identity.UserID, text, author, s.now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update quote",
			slog.String("quote_id", quoteID),
			slog.Any("error", err),
		)

		return nil, domain.NewInternalError("Failed to update quote in database", err)
	}

	s.logger.InfoContext(ctx, "quote updated",
		slog.String("quote_id", updated.ID),
		slog.String("user_id", identity.UserID),
		slog.String("author", updated.AuthorName),
	)

	return updated, nil
}

// CreateQuote inserts a new quote owned by the caller. The submission path
// keeps its own 500-character ceiling and never applies the edit bounds.
func (s *QuoteService) CreateQuote(
	ctx context.Context,
	identity *ports.Identity,
	rawText, rawAuthor string,
) (*domain.Quote, error) {
	text, err := domain.ValidateCreateText(rawText)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	quote := &domain.Quote{
		ID:         s.newID(),
		QuoteText:  text,
		AuthorName: domain.ResolveAuthorName(rawAuthor),
		UserID:     identity.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.repo.Create(ctx, quote)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create quote",
			slog.Any("error", err),
		)

		return nil, domain.NewInternalError("Failed to save quote", err)
	}

	s.logger.InfoContext(ctx, "quote created",
		slog.String("quote_id", quote.ID),
		slog.String("user_id", identity.UserID),
	)

	return quote, nil
}

// ListQuotes returns the shared gallery, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes",
			slog.Any("error", err),
		)

		return nil, domain.NewInternalError("Failed to load quotes", err)
	}

	return quotes, nil
}

// ListMyQuotes returns the caller's own quotes, newest first.
func (s *QuoteService) ListMyQuotes(ctx context.Context, identity *ports.Identity) ([]domain.Quote, error) {
	quotes, err := s.repo.ListByOwner(ctx, identity.UserID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes for owner",
			slog.String("user_id", identity.UserID),
			slog.Any("error", err),
		)

		return nil, domain.NewInternalError("Failed to load quotes", err)
	}

	return quotes, nil
}

// GetQuote returns one quote for the detail view, regardless of owner.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}

		s.logger.ErrorContext(ctx, "failed to load quote",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)

		return nil, domain.NewInternalError("Failed to load quote", err)
	}

	return quote, nil
}

// DeleteQuote removes a quote owned by the caller. The delete statement
// filters by id AND owner, so a non-owner receives the same merged not-found
// as the update path.
func (s *QuoteService) DeleteQuote(ctx context.Context, identity *ports.Identity, id string) error {
	err := s.repo.DeleteOwned(ctx, id, identity.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.ErrQuoteNotAccessible
		}

		s.logger.ErrorContext(ctx, "failed to delete quote",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)

		return domain.NewInternalError("Failed to delete quote", err)
	}

	s.logger.InfoContext(ctx, "quote deleted",
		slog.String("quote_id", id),
		slog.String("user_id", identity.UserID),
	)

	return nil
}
