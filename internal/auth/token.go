// File: internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"craftmarket_backend/internal/common"
	"craftmarket_backend/internal/config"
	"craftmarket_backend/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates session tokens. It is the credential
// half of the authorization gate; role checks live in common.RequireRole.
type TokenService interface {
	IssueToken(u *user.User) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type jwtTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a JWT-backed token service from config.
func NewTokenService(cfg *config.Config) TokenService {
	return &jwtTokenService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    cfg.JWTTTL,
	}
}

func (s *jwtTokenService) IssueToken(u *user.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	p := u.Principal()
	claims := Claims{
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *jwtTokenService) ValidateToken(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrUnauthorized.WithDetails("Session has expired. Please sign in again.")
		}
		return nil, common.ErrUnauthorized.WithDetails("Invalid session token.")
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, common.ErrUnauthorized.WithDetails("Invalid session token.")
	}
	return &claims, nil
}
