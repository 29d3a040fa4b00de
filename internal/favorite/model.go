// File: internal/favorite/model.go
package favorite

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a user's bookmark of a listing. The (user_id, listing_id)
// pair is unique; duplicate adds collapse onto the existing row.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_listing"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_listing"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:current_timestamp"`
}

// TableName specifies the table name for the Favorite model.
func (Favorite) TableName() string {
	return "favorites"
}
