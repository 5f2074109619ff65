// Package mocks contains hand-rolled testify mocks for the port interfaces.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/quotewall/quotewall/internal/domain"
	"github.com/quotewall/quotewall/internal/ports"
)

// MockQuoteRepository is a testify mock of ports.QuoteRepository.
type MockQuoteRepository struct {
	mock.Mock
}

// NewMockQuoteRepository creates a mock that verifies expectations on cleanup.
func NewMockQuoteRepository(t *testing.T) *MockQuoteRepository {
	t.Helper()

	m := &MockQuoteRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	return quoteResult(args)
}

func (m *MockQuoteRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Quote, error) {
	args := m.Called(ctx, id, ownerID)
	return quoteResult(args)
}

func (m *MockQuoteRepository) ListAll(ctx context.Context) ([]domain.Quote, error) {
	args := m.Called(ctx)
	return quoteSliceResult(args)
}

func (m *MockQuoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Quote, error) {
	args := m.Called(ctx, ownerID)
	return quoteSliceResult(args)
}

func (m *MockQuoteRepository) UpdateOwned(
	ctx context.Context,
	id, ownerID, text, author string,
	updatedAt time.Time,
) (*domain.Quote, error) {
	args := m.Called(ctx, id, ownerID, text, author, updatedAt)
	return quoteResult(args)
}

func (m *MockQuoteRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// MockQuoteService is a testify mock of ports.QuoteService.
type MockQuoteService struct {
	mock.Mock
}

// NewMockQuoteService creates a mock that verifies expectations on cleanup.
func NewMockQuoteService(t *testing.T) *MockQuoteService {
	t.Helper()

	m := &MockQuoteService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQuoteService) AllowUpdate(ctx context.Context, identity *ports.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockQuoteService) UpdateQuote(
	ctx context.Context,
	identity *ports.Identity,
	quoteID, text, author string,
) (*domain.Quote, error) {
	args := m.Called(ctx, identity, quoteID, text, author)
	return quoteResult(args)
}

func (m *MockQuoteService) CreateQuote(
	ctx context.Context,
	identity *ports.Identity,
	text, author string,
) (*domain.Quote, error) {
	args := m.Called(ctx, identity, text, author)
	return quoteResult(args)
}

func (m *MockQuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	args := m.Called(ctx)
	return quoteSliceResult(args)
}

func (m *MockQuoteService) ListMyQuotes(ctx context.Context, identity *ports.Identity) ([]domain.Quote, error) {
	args := m.Called(ctx, identity)
	return quoteSliceResult(args)
}

func (m *MockQuoteService) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	return quoteResult(args)
}

func (m *MockQuoteService) DeleteQuote(ctx context.Context, identity *ports.Identity, id string) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

// MockIdentityVerifier is a testify mock of ports.IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

// NewMockIdentityVerifier creates a mock that verifies expectations on cleanup.
func NewMockIdentityVerifier(t *testing.T) *MockIdentityVerifier {
	t.Helper()

	m := &MockIdentityVerifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, authorization string) (*ports.Identity, error) {
	args := m.Called(ctx, authorization)

	var identity *ports.Identity
	if v := args.Get(0); v != nil {
		identity = v.(*ports.Identity)
	}

	return identity, args.Error(1)
}

// MockRateLimiter is a testify mock of ports.RateLimiter.
type MockRateLimiter struct {
	mock.Mock
}

// NewMockRateLimiter creates a mock that verifies expectations on cleanup.
func NewMockRateLimiter(t *testing.T) *MockRateLimiter {
	t.Helper()

	m := &MockRateLimiter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRateLimiter) Allow(key string) bool {
	args := m.Called(key)
	return args.Bool(0)
}

// quoteResult unpacks a (*domain.Quote, error) return pair.
func quoteResult(args mock.Arguments) (*domain.Quote, error) {
	var quote *domain.Quote
	if v := args.Get(0); v != nil {
		quote = v.(*domain.Quote)
	}

	return quote, args.Error(1)
}

// quoteSliceResult unpacks a ([]domain.Quote, error) return pair.
func quoteSliceResult(args mock.Arguments) ([]domain.Quote, error) {
	var quotes []domain.Quote
	if v := args.Get(0); v != nil {
		quotes = v.([]domain.Quote)
	}

	return quotes, args.Error(1)
}
