// File: internal/user/service.go
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for user-related business logic.
type Service interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// ServiceImplementation implements the user Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
