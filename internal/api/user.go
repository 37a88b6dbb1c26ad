package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/types"
)

// UserHandler exposes registration, profile and subscription endpoints
type UserHandler struct {
	users   *service.UserService
	follows *service.FollowService
	auth    *service.AuthService
}

func NewUserHandler(users *service.UserService, follows *service.FollowService, auth *service.AuthService) *UserHandler {
	return &UserHandler{users: users, follows: follows, auth: auth}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.auth), h.ListUsers)
		users.POST("", h.Register)
		users.GET("/me", middleware.AuthMiddleware(h.auth), h.Me)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.auth), h.Subscriptions)
		users.POST("/set_password", middleware.AuthMiddleware(h.auth), h.SetPassword)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.auth), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.auth), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.auth), h.Unsubscribe)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	profiles, total, err := h.users.List(c.Request.Context(), middleware.ViewerID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginated(total, profiles))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	profile, err := h.users.Get(c.Request.Context(), id, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	profile, err := h.users.Get(c.Request.Context(), userID, &userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req types.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.SetPassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	page, limit := pageParams(c)

	profiles, total, err := h.follows.ListFollowing(c.Request.Context(), userID, page, limit, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginated(total, profiles))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	authorID, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	profile, err := h.follows.Follow(c.Request.Context(), userID, authorID, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	authorID, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.follows.Unfollow(c.Request.Context(), userID, authorID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// recipesLimit parses the optional recipes_limit query parameter that
// caps the recipe list embedded in subscription profiles.
func recipesLimit(c *gin.Context) *int {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return nil
	}
	return &limit
}
