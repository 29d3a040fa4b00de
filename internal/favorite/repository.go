// File: internal/favorite/repository.go
package favorite

import (
	"context"
	"fmt"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/listing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for favorite data operations.
type Repository interface {
	// Add inserts the favorite pair; a duplicate insert is absorbed by the
	// unique index and reported as success.
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	// Remove deletes the favorite pair; removing an absent pair succeeds.
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	// ListListings returns the user's favorited listings joined with their
	// current state, most recently favorited first. Favorites whose listing
	// no longer exists are dropped by the join.
	ListListings(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]listing.Listing, *common.Pagination, error)
	// DeleteOrphans removes favorite rows whose listing has been deleted
	// and reports how many were swept.
	DeleteOrphans(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM favorite repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	fav := &Favorite{ID: uuid.New(), UserID: userID, ListingID: listingID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "listing_id"}},
			DoNothing: true,
		}).
		Create(fav).Error
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *gormRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *gormRepository) ListListings(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]listing.Listing, *common.Pagination, error) {
	base := r.db.WithContext(ctx).
		Table("favorites").
		Joins("JOIN listings ON listings.id = favorites.listing_id").
		Where("favorites.user_id = ?", userID)

	var totalItems int64
	if err := base.Session(&gorm.Session{}).Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	pagination := common.NewPagination(totalItems, page, pageSize)

	var listings []listing.Listing
	err := base.Session(&gorm.Session{}).
		Select("listings.*").
		Order("favorites.created_at DESC").
		Offset((pagination.CurrentPage - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&listings).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list favorited listings: %w", err)
	}

	return listings, pagination, nil
}

func (r *gormRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec("DELETE FROM favorites WHERE listing_id NOT IN (SELECT id FROM listings)")
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sweep orphan favorites: %w", result.Error)
	}
	return result.RowsAffected, nil
}
