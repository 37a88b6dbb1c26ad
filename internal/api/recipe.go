package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platefeed/backend/internal/middleware"
	"github.com/platefeed/backend/internal/models"
	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/types"
)

// RecipeHandler exposes recipe CRUD, favorite/cart toggles and the
// shopping list download.
type RecipeHandler struct {
	recipes      *service.RecipeService
	favorites    *service.RelationService[models.FavoriteRecipe]
	cart         *service.RelationService[models.ShoppingCart]
	shoppingList *service.ShoppingListService
	auth         *service.AuthService
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	favorites *service.RelationService[models.FavoriteRecipe],
	cart *service.RelationService[models.ShoppingCart],
	shoppingList *service.ShoppingListService,
	auth *service.AuthService,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:      recipes,
		favorites:    favorites,
		cart:         cart,
		shoppingList: shoppingList,
		auth:         auth,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.auth), h.ListRecipes)
		recipes.POST("", middleware.AuthMiddleware(h.auth), h.CreateRecipe)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.auth), h.DownloadShoppingCart)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.auth), h.GetRecipe)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.auth), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.auth), h.relationAdd(h.favorites))
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.auth), h.relationRemove(h.favorites))
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.relationAdd(h.cart))
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.relationRemove(h.cart))
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, limit := pageParams(c)

	filter := service.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
		Viewer:   middleware.ViewerID(c),
		Page:     page,
		Limit:    limit,
	}
	if author := c.Query("author"); author != "" {
		if id, err := strconv.ParseUint(author, 10, 32); err == nil {
			authorID := uint(id)
			filter.AuthorID = &authorID
		}
	}
	if fav, err := strconv.ParseBool(c.DefaultQuery("is_favorited", "false")); err == nil {
		filter.Favorited = fav
	}
	if cart, err := strconv.ParseBool(c.DefaultQuery("is_in_shopping_cart", "false")); err == nil {
		filter.InCart = cart
	}

	details, total, err := h.recipes.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginated(total, details))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	detail, err := h.recipes.Get(c.Request.Context(), id, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.recipes.Create(c.Request.Context(), userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, detail)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.recipes.Update(c.Request.Context(), id, userID, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	report, err := h.shoppingList.BuildReport(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

// relationToggler is the shared favorite/cart contract; both
// RelationService instantiations satisfy it.
type relationToggler interface {
	Add(ctx context.Context, userID, recipeID uint) (*types.RecipeSummary, error)
	Remove(ctx context.Context, userID, recipeID uint) error
}

func (h *RecipeHandler) relationAdd(svc relationToggler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		id, ok := uintParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}

		summary, err := svc.Add(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, summary)
	}
}

func (h *RecipeHandler) relationRemove(svc relationToggler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		id, ok := uintParam(c, "id")
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}

		if err := svc.Remove(c.Request.Context(), userID, id); err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
