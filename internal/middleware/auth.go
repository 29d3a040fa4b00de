// File: internal/middleware/auth.go
package middleware

import (
	"craftmarket_backend/internal/auth"
	"craftmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware resolves the caller's session token into a Principal and
// stores it in the request context. Requests without a valid credential are
// rejected as unauthenticated.
func AuthMiddleware(tokenService auth.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromHeader(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("A bearer session token is required. Please sign in."))
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Warn("Session token validation failed", zap.Error(err))
			common.RespondWithError(c, err)
			return
		}

		principal := common.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}
		c.Set(common.PrincipalKey, principal)
		c.Set(common.UserIDKey, principal.UserID)
		c.Set(common.UserRoleKey, principal.Role)

		c.Next()
	}
}

// RoleAuthMiddleware checks that the authenticated principal holds one of
// the required roles. Must run after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := common.GetPrincipalFromContext(c)

		for _, role := range allowedRoles {
			if err := common.RequireRole(p, role); err == nil {
				c.Next()
				return
			}
		}

		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
	}
}
