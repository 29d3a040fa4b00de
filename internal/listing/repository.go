// File: internal/listing/repository.go
package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"craftmarket_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for listing data operations.
type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Search(ctx context.Context, query ListingSearchQuery, statuses []ListingStatus) ([]Listing, *common.Pagination, error)
	// UpdateStatusCAS transitions status from->to atomically and reports
	// whether a row was changed. Zero rows means the listing is missing or
	// its status no longer matches from.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to ListingStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, listing *Listing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("A listing with this slug already exists.")
		}
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var listing Listing
	err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil, err
	}
	return &listing, nil
}

// Search retrieves listings matching the free-text filter, restricted to
// the given statuses, most recent first.
func (r *gormRepository) Search(ctx context.Context, query ListingSearchQuery, statuses []ListingStatus) ([]Listing, *common.Pagination, error) {
	var listings []Listing
	var totalItems int64

	dbQuery := r.db.WithContext(ctx).Model(&Listing{})

	if query.SearchTerm != "" {
		term := "%" + strings.ToLower(query.SearchTerm) + "%"
		// array_to_string is postgres-only; on other dialects (the sqlite
		// test harness) tags are stored as an opaque text literal.
		if r.db.Dialector.Name() == "postgres" {
			dbQuery = dbQuery.Where(
				"LOWER(title) LIKE ? OR LOWER(seller_name) LIKE ? OR LOWER(array_to_string(tags, ' ')) LIKE ?",
				term, term, term,
			)
		} else {
			dbQuery = dbQuery.Where(
				"LOWER(title) LIKE ? OR LOWER(seller_name) LIKE ?",
				term, term,
			)
		}
	}
	if query.Category != "" {
		dbQuery = dbQuery.Where("category = ?", query.Category)
	}
	if len(statuses) > 0 {
		dbQuery = dbQuery.Where("status IN ?", statuses)
	}

	if err := dbQuery.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count listings: %w", err)
	}

	pagination := common.NewPagination(totalItems, query.Page, query.PageSize)
	err := dbQuery.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.Limit()).
		Find(&listings).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search listings: %w", err)
	}

	return listings, pagination, nil
}

func (r *gormRepository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to ListingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Listing{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a listing and its dependent favorite rows in one
// transaction. Favorites are addressed by table name to keep the store
// boundary one-directional.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM favorites WHERE listing_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to clean up favorites for listing: %w", err)
		}

		result := tx.Delete(&Listing{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil
	})
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Listing{}).Count(&count).Error
	return count, err
}
