package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/format"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type RecipeHandler struct {
	recipeService   service.IRecipeService
	validator       middleware.TokenValidator
	creationLimiter *middleware.RateLimiter
	logger          *zap.Logger
}

// NewRecipeHandler creates a recipe handler. creationLimiter may be nil.
func NewRecipeHandler(recipeService service.IRecipeService, validator middleware.TokenValidator, creationLimiter *middleware.RateLimiter, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		validator:       validator,
		creationLimiter: creationLimiter,
		logger:          logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.validator)

	create := []gin.HandlerFunc{auth}
	if h.creationLimiter != nil {
		create = append(create, h.creationLimiter.Middleware(middleware.ByUser))
	}
	create = append(create, h.CreateRecipe)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.POST("/parse", h.ParseRecipeText)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", create...)
		recipes.PUT("/:id", auth, h.UpdateRecipe)
		recipes.DELETE("/:id", auth, h.DeleteRecipe)
	}

	router.GET("/categories", h.ListCategories)
	router.GET("/categories/:category/recipes", h.ListCategoryRecipes)
	router.GET("/users/:id/recipes", h.ListUserRecipes)
	router.GET("/stats", auth, h.GetStats)
}

// ListRecipes supports ?search=, ?category= and ?sortBy=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.GetAllRecipes(c.Request.Context(),
		c.Query("search"), c.Query("category"), c.Query("sortBy"))
	h.respondRecipes(c, recipes, err)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	recipes, err := h.recipeService.SearchRecipes(c.Request.Context(), c.Query("q"))
	h.respondRecipes(c, recipes, err)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, found, err := h.recipeService.GetRecipeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to load recipe", zap.String("recipe_id", c.Param("id")), zap.Error(err))
		respondError(c, http.StatusInternalServerError, msgLoadFailed)
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "Recipe not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, input, ok := h.bindMutation(c)
	if !ok {
		return
	}
	respondResult(c, http.StatusCreated, h.recipeService.CreateRecipe(c.Request.Context(), input, userID))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, input, ok := h.bindMutation(c)
	if !ok {
		return
	}
	respondResult(c, http.StatusOK, h.recipeService.UpdateRecipe(c.Request.Context(), c.Param("id"), input, userID))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	res := h.recipeService.DeleteRecipe(c.Request.Context(), c.Param("id"), userID)
	if !res.Success {
		c.JSON(statusFor(res.Reason), res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ParseRecipeText splits pasted text into ingredient and instruction lists
func (h *RecipeHandler) ParseRecipeText(c *gin.Context) {
	var req types.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	c.JSON(http.StatusOK, types.ParseResponse{
		Ingredients:  format.ParseIngredients(req.Ingredients),
		Instructions: format.ParseInstructions(req.Instructions),
	})
}

func (h *RecipeHandler) ListCategories(c *gin.Context) {
	categories, err := h.recipeService.GetCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load categories", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

func (h *RecipeHandler) ListCategoryRecipes(c *gin.Context) {
	recipes, err := h.recipeService.GetRecipesByCategory(c.Request.Context(), c.Param("category"))
	h.respondRecipes(c, recipes, err)
}

func (h *RecipeHandler) ListUserRecipes(c *gin.Context) {
	recipes, err := h.recipeService.GetRecipesByUser(c.Request.Context(), c.Param("id"))
	h.respondRecipes(c, recipes, err)
}

// GetStats summarises the caller's own recipes
func (h *RecipeHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	stats, err := h.recipeService.GetRecipeStats(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to compute stats", zap.String("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *RecipeHandler) bindMutation(c *gin.Context) (string, model.RecipeInput, bool) {
	var input model.RecipeInput
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgNotAuthenticated)
		return "", input, false
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return "", input, false
	}
	return userID, input, true
}

func (h *RecipeHandler) respondRecipes(c *gin.Context, recipes []model.Recipe, err error) {
	if err != nil {
		h.logger.Error("failed to load recipes", zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, msgLoadFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes})
}
