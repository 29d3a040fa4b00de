// File: internal/listing/model.go
package listing

import (
	"time"

	"craftmarket_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// --- Status lifecycle ---

type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusInactive ListingStatus = "inactive"
	StatusSold     ListingStatus = "sold"
)

// CanTransitionTo reports whether the status machine allows moving from s
// to target. Active and inactive toggle freely and either may become sold;
// sold is terminal.
func (s ListingStatus) CanTransitionTo(target ListingStatus) bool {
	switch s {
	case StatusActive:
		return target == StatusInactive || target == StatusSold
	case StatusInactive:
		return target == StatusActive || target == StatusSold
	default:
		return false
	}
}

// Toggled returns the admin-toggle counterpart of the status. Sold has no
// counterpart and returns itself.
func (s ListingStatus) Toggled() ListingStatus {
	switch s {
	case StatusActive:
		return StatusInactive
	case StatusInactive:
		return StatusActive
	default:
		return s
	}
}

// --- Categories ---

type ListingCategory string

const (
	CategoryProgramming ListingCategory = "programming"
	CategoryDesign      ListingCategory = "design"
	CategoryArt         ListingCategory = "art"
	CategoryCrafts      ListingCategory = "crafts"
	CategoryEducation   ListingCategory = "education"
	CategoryOther       ListingCategory = "other"
)

var validCategories = map[ListingCategory]bool{
	CategoryProgramming: true,
	CategoryDesign:      true,
	CategoryArt:         true,
	CategoryCrafts:      true,
	CategoryEducation:   true,
	CategoryOther:       true,
}

// IsValidCategory reports whether the value is one of the fixed category set.
func IsValidCategory(c ListingCategory) bool {
	return validCategories[c]
}

// --- Main Listing Model ---

// Listing is a seller-created catalog entry with a moderated lifecycle
// status. SellerName is a denormalized copy taken at creation time; later
// display-name changes are not propagated back.
type Listing struct {
	common.BaseModel
	Slug        string          `gorm:"type:varchar(300);not null;uniqueIndex"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text;not null"`
	Price       float64         `gorm:"type:numeric(12,2);not null;default:0"`
	LegacyPrice *float64        `gorm:"column:legacy_price;type:numeric(12,2)"`
	Category    ListingCategory `gorm:"type:varchar(50);not null"`
	ImageURL    string          `gorm:"type:text;not null"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerName  string          `gorm:"type:varchar(150);not null"`
	Tags        pq.StringArray  `gorm:"type:text[]"`
	Rating      float64         `gorm:"type:numeric(3,2);not null;default:0"`
	ReviewCount int             `gorm:"not null;default:0"`
	Status      ListingStatus   `gorm:"type:varchar(50);not null;default:'active';index"`
}

// TableName specifies the table name for the Listing model.
func (Listing) TableName() string {
	return "listings"
}

// NormalizedPrice resolves the display price with documented precedence:
// the price column when set, else the legacy alias column carried over from
// older records, else zero.
func (l *Listing) NormalizedPrice() float64 {
	if l.Price > 0 {
		return l.Price
	}
	if l.LegacyPrice != nil && *l.LegacyPrice > 0 {
		return *l.LegacyPrice
	}
	return 0
}

// --- DTOs for API ---

type CreateListingRequest struct {
	Title       string          `json:"title" binding:"required,min=3,max=255"`
	Description string          `json:"description" binding:"required,min=10"`
	Price       *float64        `json:"price" binding:"required,gte=0"`
	Category    ListingCategory `json:"category" binding:"required,oneof=programming design art crafts education other"`
	ImageURL    string          `json:"image_url,omitempty" binding:"omitempty,max=500"`
	Tags        []string        `json:"tags,omitempty" binding:"omitempty,max=10,dive,min=1,max=50"`
}

// AdminStatusUpdateRequest maps the moderation toggle body onto the
// active/inactive transition.
type AdminStatusUpdateRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type ListingResponse struct {
	ID          uuid.UUID       `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Category    ListingCategory `json:"category"`
	ImageURL    string          `json:"image_url"`
	SellerID    uuid.UUID       `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	Tags        []string        `json:"tags,omitempty"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
	Status      ListingStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToListingResponse converts a Listing model to its API representation.
func ToListingResponse(l *Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		Slug:        l.Slug,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.NormalizedPrice(),
		Category:    l.Category,
		ImageURL:    l.ImageURL,
		SellerID:    l.SellerID,
		SellerName:  l.SellerName,
		Tags:        l.Tags,
		Rating:      l.Rating,
		ReviewCount: l.ReviewCount,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// AdminListingSummary is the moderation queue row: resolved seller display
// name plus the normalized price.
type AdminListingSummary struct {
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	SellerName string          `json:"seller_name"`
	Price      float64         `json:"price"`
	Category   ListingCategory `json:"category"`
	Status     ListingStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToAdminListingSummary converts a Listing to its moderation-queue row.
func ToAdminListingSummary(l *Listing) AdminListingSummary {
	return AdminListingSummary{
		ID:         l.ID,
		Title:      l.Title,
		SellerName: l.SellerName,
		Price:      l.NormalizedPrice(),
		Category:   l.Category,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
	}
}

// ListingSearchQuery carries the catalog search filters.
type ListingSearchQuery struct {
	common.PaginationQuery
	SearchTerm string          `form:"q"`
	Category   ListingCategory `form:"category"`
	Status     ListingStatus   `form:"status"`
}
