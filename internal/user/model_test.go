package user

import (
	"testing"

	"craftmarket_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_Principal(t *testing.T) {
	u := &User{
		BaseModel:   common.BaseModel{ID: uuid.New()},
		Email:       "maya@example.com",
		DisplayName: "Maya Crafts",
		Role:        common.RoleAdmin,
	}

	p := u.Principal()

	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, "maya@example.com", p.Email)
	assert.Equal(t, common.RoleAdmin, p.Role)
	assert.True(t, p.IsAdmin())
}
