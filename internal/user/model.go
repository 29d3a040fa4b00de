// File: internal/user/model.go
package user

import (
	"time"

	"craftmarket_backend/internal/common"

	"github.com/google/uuid"
)

// User represents a marketplace account, buyer or seller alike.
type User struct {
	common.BaseModel
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	DisplayName  string `gorm:"type:varchar(150);not null"`
	Role         string `gorm:"type:varchar(50);not null;default:'user'"`
	LastLoginAt  *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Principal resolves the account into an authorization principal.
func (u *User) Principal() common.Principal {
	return common.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a User model to a UserResponse DTO. The password
// hash never leaves this package.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
