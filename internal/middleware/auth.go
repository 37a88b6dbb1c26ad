package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platefeed/backend/internal/types"
)

// ContextUserID is the gin context key holding the authenticated user's id
const ContextUserID = "user_id"

// TokenValidator is an interface for validating bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware rejects requests without a valid, unrevoked bearer token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c, validator)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer when a valid token is
// present and lets the request through anonymously otherwise.
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := claimsFromRequest(c, validator); err == nil {
			c.Set(ContextUserID, claims.UserID)
		}
		c.Next()
	}
}

func claimsFromRequest(c *gin.Context, validator TokenValidator) (*types.TokenClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errBadHeaderFormat
	}

	return validator.ValidateToken(parts[1])
}

// UserID returns the authenticated user id stored by AuthMiddleware
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// ViewerID returns a pointer to the viewer's id, nil for anonymous requests
func ViewerID(c *gin.Context) *uint {
	if id, ok := UserID(c); ok {
		return &id
	}
	return nil
}
