// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for the authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// PrincipalKey is the context key for the resolved Principal
	PrincipalKey = "principal"
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey = "userID"
	// UserRoleKey is the context key for the authenticated user's role
	UserRoleKey = "userRole"
)
