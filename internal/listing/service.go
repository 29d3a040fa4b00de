// File: internal/listing/service.go
package listing

import (
	"context"
	"fmt"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/config"
	"craftmarket_backend/internal/user"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// statusRetryAttempts bounds the compare-and-set loop under concurrent
// moderation of the same listing.
const statusRetryAttempts = 3

// Service defines the interface for listing business logic, including the
// administrator moderation workflow.
type Service interface {
	CreateListing(ctx context.Context, principal common.Principal, req CreateListingRequest) (*Listing, error)
	GetListingByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	SearchListings(ctx context.Context, query ListingSearchQuery) ([]Listing, *common.Pagination, error)
	DeleteListing(ctx context.Context, principal common.Principal, id uuid.UUID) error
	// MarkSold is the purchase collaborator's entry point; sold is terminal.
	MarkSold(ctx context.Context, id uuid.UUID) (*Listing, error)
	CountListings(ctx context.Context) (int64, error)

	// Admin moderation
	AdminSearchListings(ctx context.Context, principal common.Principal, query ListingSearchQuery) ([]AdminListingSummary, *common.Pagination, error)
	AdminToggleStatus(ctx context.Context, principal common.Principal, id uuid.UUID) (*Listing, error)
	AdminSetActive(ctx context.Context, principal common.Principal, id uuid.UUID, active bool) (*Listing, error)
}

// ServiceImplementation implements the listing Service interface.
type ServiceImplementation struct {
	repo     Repository
	userRepo user.Repository
	cfg      *config.Config
	logger   *zap.Logger
}

// NewService creates a new listing service.
func NewService(
	repo Repository,
	userRepo user.Repository,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:     repo,
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateListing validates the request, copies the seller's display name onto
// the listing and stores it with status active.
func (s *ServiceImplementation) CreateListing(ctx context.Context, principal common.Principal, req CreateListingRequest) (*Listing, error) {
	if principal.UserID == uuid.Nil {
		return nil, common.ErrUnauthorized
	}
	if !IsValidCategory(req.Category) {
		return nil, common.NewValidationFieldError("category",
			fmt.Sprintf("'%s' is not a recognized category.", req.Category))
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, common.NewValidationFieldError("price", "The price must be a non-negative number.")
	}

	seller, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		s.logger.Error("Seller lookup failed during listing creation",
			zap.String("sellerID", principal.UserID.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not resolve the seller account.")
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = s.cfg.PlaceholderImageURL
	}

	newListing := &Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    imageURL,
		SellerID:    seller.ID,
		SellerName:  seller.DisplayName,
		Tags:        req.Tags,
		Status:      StatusActive,
	}
	// The ID doubles as the slug suffix, so assign it before insert.
	newListing.ID = uuid.New()
	newListing.Slug = slug.Make(req.Title) + "-" + newListing.ID.String()[:8]

	if err := s.repo.Create(ctx, newListing); err != nil {
		s.logger.Error("Failed to create listing in repository", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Listing created",
		zap.String("listingID", newListing.ID.String()),
		zap.String("sellerID", seller.ID.String()),
		zap.String("category", string(newListing.Category)),
	)
	return s.repo.FindByID(ctx, newListing.ID)
}

func (s *ServiceImplementation) GetListingByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return s.repo.FindByID(ctx, id)
}

// SearchListings is the public catalog search; only active listings are
// visible to buyers.
func (s *ServiceImplementation) SearchListings(ctx context.Context, query ListingSearchQuery) ([]Listing, *common.Pagination, error) {
	listings, pagination, err := s.repo.Search(ctx, query, []ListingStatus{StatusActive})
	if err != nil {
		s.logger.Error("Failed to search listings", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve listings.")
	}
	return listings, pagination, nil
}

// DeleteListing removes a listing. Sellers may delete their own listings;
// administrators may delete any. Dependent favorites are cleaned up by the
// repository in the same transaction.
func (s *ServiceImplementation) DeleteListing(ctx context.Context, principal common.Principal, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.IsAdmin() {
		if err := common.RequireOwner(principal, existing.SellerID); err != nil {
			s.logger.Warn("Listing delete denied",
				zap.String("listingID", id.String()),
				zap.String("callerID", principal.UserID.String()))
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete listing", zap.Error(err), zap.String("listingID", id.String()))
		return err
	}
	s.logger.Info("Listing deleted", zap.String("listingID", id.String()), zap.String("callerID", principal.UserID.String()))
	return nil
}

func (s *ServiceImplementation) MarkSold(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return s.setStatus(ctx, id, StatusSold)
}

func (s *ServiceImplementation) CountListings(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// AdminSearchListings serves the moderation queue. Without an explicit
// status filter it returns active and inactive listings only; sold items
// are not actionable and stay out of the queue.
func (s *ServiceImplementation) AdminSearchListings(ctx context.Context, principal common.Principal, query ListingSearchQuery) ([]AdminListingSummary, *common.Pagination, error) {
	if err := common.RequireRole(principal, common.RoleAdmin); err != nil {
		return nil, nil, err
	}

	statuses := []ListingStatus{StatusActive, StatusInactive}
	if query.Status != "" {
		statuses = []ListingStatus{query.Status}
	}

	listings, pagination, err := s.repo.Search(ctx, query, statuses)
	if err != nil {
		s.logger.Error("Failed to search listings for moderation", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve listings.")
	}

	summaries := make([]AdminListingSummary, len(listings))
	for i := range listings {
		summaries[i] = ToAdminListingSummary(&listings[i])
	}
	return summaries, pagination, nil
}

// AdminToggleStatus flips a listing between active and inactive. Toggling a
// sold listing is an invalid transition and leaves it unchanged.
func (s *ServiceImplementation) AdminToggleStatus(ctx context.Context, principal common.Principal, id uuid.UUID) (*Listing, error) {
	if err := common.RequireRole(principal, common.RoleAdmin); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < statusRetryAttempts; attempt++ {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		target := current.Status.Toggled()
		if !current.Status.CanTransitionTo(target) {
			return nil, common.ErrInvalidTransition.WithDetails(
				fmt.Sprintf("A %s listing cannot be toggled.", current.Status))
		}

		changed, err := s.repo.UpdateStatusCAS(ctx, id, current.Status, target)
		if err != nil {
			s.logger.Error("Failed to toggle listing status", zap.Error(err), zap.String("listingID", id.String()))
			return nil, err
		}
		if changed {
			s.logger.Info("Listing status toggled",
				zap.String("listingID", id.String()),
				zap.String("from", string(current.Status)),
				zap.String("to", string(target)),
				zap.String("adminID", principal.UserID.String()),
			)
			return s.repo.FindByID(ctx, id)
		}
		// Lost a race with a concurrent status change; re-read and retry.
	}
	return nil, common.ErrConflict.WithDetails("The listing status changed concurrently. Please retry.")
}

// AdminSetActive maps an explicit is_active flag onto the status machine.
// Setting the flag the listing already has is a no-op success.
func (s *ServiceImplementation) AdminSetActive(ctx context.Context, principal common.Principal, id uuid.UUID, active bool) (*Listing, error) {
	if err := common.RequireRole(principal, common.RoleAdmin); err != nil {
		return nil, err
	}

	target := StatusInactive
	if active {
		target = StatusActive
	}
	return s.setStatus(ctx, id, target)
}

// setStatus drives the status state machine with an atomic compare-and-set
// so concurrent writers on the same listing serialize.
func (s *ServiceImplementation) setStatus(ctx context.Context, id uuid.UUID, target ListingStatus) (*Listing, error) {
	for attempt := 0; attempt < statusRetryAttempts; attempt++ {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status == target {
			return current, nil
		}
		if !current.Status.CanTransitionTo(target) {
			return nil, common.ErrInvalidTransition.WithDetails(
				fmt.Sprintf("Cannot change a %s listing to %s.", current.Status, target))
		}

		changed, err := s.repo.UpdateStatusCAS(ctx, id, current.Status, target)
		if err != nil {
			return nil, err
		}
		if changed {
			s.logger.Info("Listing status changed",
				zap.String("listingID", id.String()),
				zap.String("from", string(current.Status)),
				zap.String("to", string(target)),
			)
			return s.repo.FindByID(ctx, id)
		}
	}
	return nil, common.ErrConflict.WithDetails("The listing status changed concurrently. Please retry.")
}
