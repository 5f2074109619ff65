//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/quotewall/quotewall/internal/adapters/ratelimit"
	"github.com/quotewall/quotewall/internal/adapters/storage"
	"github.com/quotewall/quotewall/internal/app"
	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/ports"
)

func newConcurrencyService(t *testing.T, limit int) (*app.QuoteService, *storage.GormQuoteRepository) {
	t.Helper()

	db, err := storage.Open(context.Background(), storage.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "quotes.db"),
	}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	repo := storage.NewGormQuoteRepository(db)

	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repo:    repo,
		Limiter: ratelimit.New(limit, time.Minute),
		Logger:  slog.New(slog.DiscardHandler),
	})

	return service, repo
}

// TestConcurrent_RateLimiterUnderContention verifies the limiter admits
// exactly the configured quota when calls race for it.
func TestConcurrent_RateLimiterUnderContention(t *testing.T) {
	const limit = 10
	const callers = 50

	limiter := ratelimit.New(limit, time.Minute)

	var allowed, denied int32
	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("user-contended") {
				atomic.AddInt32(&allowed, 1)
			} else {
				atomic.AddInt32(&denied, 1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(limit), atomic.LoadInt32(&allowed), "exactly the quota should be admitted")
	assert.Equal(t, int32(callers-limit), atomic.LoadInt32(&denied))
}

// TestConcurrent_UpdatesShareOneQuota verifies that parallel edits by the
// same user are capped at the quota while the writes that do land are intact.
// Each attempt runs the same two-step sequence the handler does: consume
// quota, then edit.
func TestConcurrent_UpdatesShareOneQuota(t *testing.T) {
	const limit = 5
	const attempts = 20

	service, repo := newConcurrencyService(t, limit)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Create(context.Background(), &domain.Quote{
		ID:         "q-contended",
		QuoteText:  "The original quote body.",
		AuthorName: "Author",
		UserID:     "user-alice",
		CreatedAt:  now,
		UpdatedAt:  now,
	}))

	identity := &ports.Identity{UserID: "user-alice"}

	var succeeded, limited int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			if err := service.AllowUpdate(context.Background(), identity); err != nil {
				if errors.Is(err, domain.ErrRateLimited) {
					atomic.AddInt32(&limited, 1)
				} else {
					t.Errorf("unexpected admission error: %v", err)
				}
				return
			}

			text := fmt.Sprintf("Concurrent edit number %d body.", n)
			_, err := service.UpdateQuote(context.Background(), identity, "q-contended", text, "Author")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			atomic.AddInt32(&succeeded, 1)
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(limit), atomic.LoadInt32(&succeeded))
	assert.Equal(t, int32(attempts-limit), atomic.LoadInt32(&limited))

	stored, err := repo.GetByID(context.Background(), "q-contended")
	require.NoError(t, err)
	assert.Contains(t, stored.QuoteText, "Concurrent edit number")
	assert.Equal(t, "user-alice", stored.UserID)
}

// TestConcurrent_DistinctUsersDoNotShareQuota verifies quota isolation
// across users editing their own quotes in parallel.
func TestConcurrent_DistinctUsersDoNotShareQuota(t *testing.T) {
	const users = 8
	const editsPerUser = 3

	service, repo := newConcurrencyService(t, editsPerUser)

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < users; i++ {
		require.NoError(t, repo.Create(context.Background(), &domain.Quote{
			ID:         fmt.Sprintf("q-%d", i),
			QuoteText:  "The original quote body.",
			AuthorName: "Author",
			UserID:     fmt.Sprintf("user-%d", i),
			CreatedAt:  now,
			UpdatedAt:  now,
		}))
	}

	g, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < users; i++ {
		g.Go(func() error {
			identity := &ports.Identity{UserID: fmt.Sprintf("user-%d", i)}
			quoteID := fmt.Sprintf("q-%d", i)

			for n := 0; n < editsPerUser; n++ {
				// Every edit fits within the user's own quota, so no
				// admission may fail even with all users racing.
				if err := service.AllowUpdate(ctx, identity); err != nil {
					return fmt.Errorf("user %s admission %d: %w", identity.UserID, n, err)
				}

				text := fmt.Sprintf("Edit %d by %s, long enough.", n, identity.UserID)

				_, err := service.UpdateQuote(ctx, identity, quoteID, text, "Author")
				if err != nil {
					return fmt.Errorf("user %s edit %d: %w", identity.UserID, n, err)
				}
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
}

// TestConcurrent_CreatesAllPersist verifies parallel submissions all land.
func TestConcurrent_CreatesAllPersist(t *testing.T) {
	const writers = 10
	const quotesPerWriter = 5

	service, repo := newConcurrencyService(t, writers*quotesPerWriter)

	g, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < writers; i++ {
		g.Go(func() error {
			identity := &ports.Identity{UserID: fmt.Sprintf("user-%d", i)}

			for n := 0; n < quotesPerWriter; n++ {
				text := fmt.Sprintf("Submission %d from %s.", n, identity.UserID)

				_, err := service.CreateQuote(ctx, identity, text, "Author")
				if err != nil {
					return fmt.Errorf("writer %s quote %d: %w", identity.UserID, n, err)
				}
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, writers*quotesPerWriter)
}
