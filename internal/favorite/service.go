// File: internal/favorite/service.go
package favorite

import (
	"context"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/listing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for favorites business logic. Every
// operation is gated on the principal owning the favorites being managed.
type Service interface {
	AddFavorite(ctx context.Context, principal common.Principal, userID, listingID uuid.UUID) error
	RemoveFavorite(ctx context.Context, principal common.Principal, userID, listingID uuid.UUID) error
	ListFavorites(ctx context.Context, principal common.Principal, userID uuid.UUID, page, pageSize int) ([]listing.Listing, *common.Pagination, error)
	SweepOrphans(ctx context.Context) (int64, error)
}

// ServiceImplementation implements the favorite Service interface.
type ServiceImplementation struct {
	repo        Repository
	listingRepo listing.Repository
	logger      *zap.Logger
}

// NewService creates a new favorite service.
func NewService(repo Repository, listingRepo listing.Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:        repo,
		listingRepo: listingRepo,
		logger:      logger,
	}
}

// AddFavorite bookmarks a listing for the user. Adding an already-favorited
// listing is a no-op success.
func (s *ServiceImplementation) AddFavorite(ctx context.Context, principal common.Principal, userID, listingID uuid.UUID) error {
	if err := common.RequireOwner(principal, userID); err != nil {
		return err
	}

	// The listing must exist at add time; the relation row never outlives
	// presentation of the listing either way.
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		return err
	}

	if err := s.repo.Add(ctx, userID, listingID); err != nil {
		s.logger.Error("Failed to add favorite", zap.Error(err),
			zap.String("userID", userID.String()), zap.String("listingID", listingID.String()))
		return common.ErrInternalServer.WithDetails("Could not save the favorite.")
	}
	return nil
}

// RemoveFavorite deletes the bookmark. Removing a favorite that does not
// exist is a no-op success.
func (s *ServiceImplementation) RemoveFavorite(ctx context.Context, principal common.Principal, userID, listingID uuid.UUID) error {
	if err := common.RequireOwner(principal, userID); err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, userID, listingID); err != nil {
		s.logger.Error("Failed to remove favorite", zap.Error(err),
			zap.String("userID", userID.String()), zap.String("listingID", listingID.String()))
		return common.ErrInternalServer.WithDetails("Could not remove the favorite.")
	}
	return nil
}

// ListFavorites returns the user's favorited listings joined with current
// listing state. A favorite whose listing was deleted is silently excluded.
func (s *ServiceImplementation) ListFavorites(ctx context.Context, principal common.Principal, userID uuid.UUID, page, pageSize int) ([]listing.Listing, *common.Pagination, error) {
	if err := common.RequireOwner(principal, userID); err != nil {
		return nil, nil, err
	}

	listings, pagination, err := s.repo.ListListings(ctx, userID, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list favorites", zap.Error(err), zap.String("userID", userID.String()))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve favorites.")
	}
	return listings, pagination, nil
}

// SweepOrphans removes favorite rows left behind by listing deletions. The
// inline cascade covers the common path; the sweep closes the window left
// by any interrupted cleanup.
func (s *ServiceImplementation) SweepOrphans(ctx context.Context) (int64, error) {
	swept, err := s.repo.DeleteOrphans(ctx)
	if err != nil {
		s.logger.Error("Orphan favorite sweep failed", zap.Error(err))
		return 0, err
	}
	if swept > 0 {
		s.logger.Info("Swept orphan favorites", zap.Int64("count", swept))
	}
	return swept, nil
}
