package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/quotewall/quotewall/internal/domain"
)

// quoteRecord is the GORM row mapping for the quotes table.
// This is a storage-internal type, never exposed outside the adapter.
type quoteRecord struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	QuoteText  string    `gorm:"column:quote_text;not null"`
	AuthorName string    `gorm:"column:author_name;not null"`
	UserID     string    `gorm:"column:user_id;type:varchar(36);not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

// TableName fixes the table name regardless of GORM pluralization rules.
func (quoteRecord) TableName() string {
	return "quotes"
}

// toDomain converts the row to the domain entity.
func (r *quoteRecord) toDomain() *domain.Quote {
	return &domain.Quote{
		ID:         r.ID,
		QuoteText:  r.QuoteText,
		AuthorName: r.AuthorName,
		UserID:     r.UserID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// fromDomain converts the domain entity to a row.
func fromDomain(q *domain.Quote) *quoteRecord {
	return &quoteRecord{
		ID:         q.ID,
		QuoteText:  q.QuoteText,
		AuthorName: q.AuthorName,
		UserID:     q.UserID,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// GormQuoteRepository is a GORM implementation of ports.QuoteRepository.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new repository on the given connection.
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Create inserts a new quote row.
func (r *GormQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	err := r.db.WithContext(ctx).Create(fromDomain(quote)).Error
	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}

	return nil
}

// GetByID retrieves a quote by id regardless of owner.
func (r *GormQuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	var record quoteRecord

	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, fmt.Errorf("selecting quote %s: %w", id, err)
	}

	return record.toDomain(), nil
}

// GetByIDAndOwner retrieves a quote filtered by id AND owner in one query,
// so callers cannot tell a missing quote from someone else's.
func (r *GormQuoteRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Quote, error) {
	var record quoteRecord

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, fmt.Errorf("selecting quote %s for owner: %w", id, err)
	}

	return record.toDomain(), nil
}

// ListAll returns every quote, newest first.
func (r *GormQuoteRepository) ListAll(ctx context.Context) ([]domain.Quote, error) {
	var records []quoteRecord

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return toDomainSlice(records), nil
}

// ListByOwner returns the owner's quotes, newest first.
func (r *GormQuoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Quote, error) {
	var records []quoteRecord

	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing quotes for owner: %w", err)
	}

	return toDomainSlice(records), nil
}

// UpdateOwned writes text, author, and updated_at in a single statement
// filtered by id AND owner. The owner filter is repeated here even though the
// service already verified ownership, guarding against a race between the
// read and the write.
func (r *GormQuoteRepository) UpdateOwned(
	ctx context.Context,
	id, ownerID, text, author string,
	updatedAt time.Time,
) (*domain.Quote, error) {
	res := r.db.WithContext(ctx).
		Model(&quoteRecord{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		UpdateColumns(map[string]any{
			"quote_text":  text,
			"author_name": author,
			"updated_at":  updatedAt,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("updating quote %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("updating quote %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByIDAndOwner(ctx, id, ownerID)
}

// DeleteOwned removes a quote filtered by id AND owner.
func (r *GormQuoteRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&quoteRecord{})
	if res.Error != nil {
		return fmt.Errorf("deleting quote %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("quote", id)
	}

	return nil
}

// Name returns the health check name for the record store.
// Implements ports.HealthChecker.
func (r *GormQuoteRepository) Name() string {
	return "database"
}

// Check pings the underlying database.
// Implements ports.HealthChecker.
func (r *GormQuoteRepository) Check(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("acquiring database handle: %w", err)
	}

	err = sqlDB.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	return nil
}

// toDomainSlice converts rows to domain entities.
func toDomainSlice(records []quoteRecord) []domain.Quote {
	quotes := make([]domain.Quote, 0, len(records))
	for i := range records {
		quotes = append(quotes, *records[i].toDomain())
	}

	return quotes
}
