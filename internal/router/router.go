package router

import (
	"github.com/gin-gonic/gin"

	"github.com/platefeed/backend/internal/api"
	"github.com/platefeed/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	userHandler *api.UserHandler,
	tagHandler *api.TagHandler,
	ingredientHandler *api.IngredientHandler,
	recipeHandler *api.RecipeHandler,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API routes
	root := router.Group("/api")

	authHandler.RegisterRoutes(root)
	userHandler.RegisterRoutes(root)
	tagHandler.RegisterRoutes(root)
	ingredientHandler.RegisterRoutes(root)
	recipeHandler.RegisterRoutes(root)

	return router
}
