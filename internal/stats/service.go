// File: internal/stats/service.go
package stats

import (
	"context"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/listing"
	"craftmarket_backend/internal/user"

	"go.uber.org/zap"
)

// Service defines the interface for platform statistics.
type Service interface {
	GetPlatformStats(ctx context.Context, principal common.Principal) (*PlatformStats, error)
}

// ServiceImplementation implements the stats Service interface.
type ServiceImplementation struct {
	repo           Repository
	userService    user.Service
	listingService listing.Service
	logger         *zap.Logger
}

// NewService creates a new stats service.
func NewService(repo Repository, userService user.Service, listingService listing.Service, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:           repo,
		userService:    userService,
		listingService: listingService,
		logger:         logger,
	}
}

// GetPlatformStats returns platform-wide counts for the admin dashboard.
func (s *ServiceImplementation) GetPlatformStats(ctx context.Context, principal common.Principal) (*PlatformStats, error) {
	if err := common.RequireRole(principal, common.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.userService.CountUsers(ctx)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not compute platform statistics.")
	}

	listings, err := s.listingService.CountListings(ctx)
	if err != nil {
		s.logger.Error("Failed to count listings", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not compute platform statistics.")
	}

	orders, err := s.repo.CountOrders(ctx)
	if err != nil {
		s.logger.Error("Failed to count orders", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not compute platform statistics.")
	}

	disputes, err := s.repo.CountOpenDisputes(ctx)
	if err != nil {
		s.logger.Error("Failed to count open disputes", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not compute platform statistics.")
	}

	return &PlatformStats{
		TotalUsers:    users,
		TotalListings: listings,
		TotalOrders:   orders,
		OpenDisputes:  disputes,
	}, nil
}
