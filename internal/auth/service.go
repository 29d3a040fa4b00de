// File: internal/auth/service.go
package auth

import (
	"context"
	"strings"
	"time"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/config"
	"craftmarket_backend/internal/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the interface for authentication business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
}

// ServiceImplementation implements the auth Service interface.
type ServiceImplementation struct {
	userRepo     user.Repository
	tokenService TokenService
	cfg          *config.Config
	logger       *zap.Logger
}

// NewService creates a new auth service.
func NewService(
	userRepo user.Repository,
	tokenService TokenService,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		userRepo:     userRepo,
		tokenService: tokenService,
		cfg:          cfg,
		logger:       logger,
	}
}

// Register creates a new account and immediately issues a session token.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not process credentials.")
	}

	newUser := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         common.RoleUser,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("userID", newUser.ID.String()))
	return s.issueFor(newUser)
}

// Login verifies a presented credential and issues a session token. The
// failure message never distinguishes unknown email from wrong password.
func (s *ServiceImplementation) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Failed login attempt", zap.String("userID", u.ID.String()))
		return nil, common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}

	now := time.Now()
	u.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, u); err != nil {
		// Login still succeeds; last-login is best effort.
		s.logger.Warn("Failed to record last login time", zap.Error(err), zap.String("userID", u.ID.String()))
	}

	return s.issueFor(u)
}

func (s *ServiceImplementation) issueFor(u *user.User) (*TokenResponse, error) {
	token, expiresAt, err := s.tokenService.IssueToken(u)
	if err != nil {
		s.logger.Error("Failed to issue session token", zap.Error(err), zap.String("userID", u.ID.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not issue session token.")
	}
	return &TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToUserResponse(u),
	}, nil
}
