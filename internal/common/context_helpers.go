// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetTokenFromHeader extracts the bearer token from the Authorization header.
// Returns an empty string if the header is absent or malformed.
func GetTokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// GetPrincipalFromContext retrieves the resolved Principal from the Gin
// context. The zero Principal means the caller is unauthenticated.
func GetPrincipalFromContext(c *gin.Context) Principal {
	val, exists := c.Get(PrincipalKey)
	if !exists {
		return Principal{}
	}
	p, ok := val.(Principal)
	if !ok {
		return Principal{}
	}
	return p
}

// GetUserIDFromContext retrieves the user ID from the Gin context.
// Returns uuid.Nil if not found.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	return GetPrincipalFromContext(c).UserID
}

// GetUserRoleFromContext retrieves the user role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) string {
	return GetPrincipalFromContext(c).Role
}
