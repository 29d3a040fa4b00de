// File: internal/stats/repository.go
package stats

import (
	"context"

	"gorm.io/gorm"
)

// Repository counts rows in tables owned by other subsystems (orders,
// disputes). It deliberately has no models of its own.
type Repository interface {
	CountOrders(ctx context.Context) (int64, error)
	CountOpenDisputes(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("orders").Count(&count).Error
	return count, err
}

func (r *gormRepository) CountOpenDisputes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("disputes").Where("status = ?", "open").Count(&count).Error
	return count, err
}
