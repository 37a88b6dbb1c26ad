package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/types"
)

// AuthHandler exposes token issue and revoke endpoints
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/token", h.IssueToken)
		auth.POST("/token/logout", middleware.AuthMiddleware(h.auth), h.RevokeToken)
	}
}

func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req types.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

func (h *AuthHandler) RevokeToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.auth.RevokeToken(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
