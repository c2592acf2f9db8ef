package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/format"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

type SuggestionHandler struct {
	suggestions   service.ISuggestionService
	recipeService service.IRecipeService
	validator     middleware.TokenValidator
	logger        *zap.Logger
}

func NewSuggestionHandler(suggestions service.ISuggestionService, recipeService service.IRecipeService, validator middleware.TokenValidator, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestions:   suggestions,
		recipeService: recipeService,
		validator:     validator,
		logger:        logger,
	}
}

func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	suggestions := router.Group("/suggestions")
	{
		suggestions.GET("", h.Random)
		suggestions.GET("/search", h.SearchByIngredients)
		suggestions.GET("/:id", h.Details)
		suggestions.POST("/:id/import", middleware.AuthMiddleware(h.validator), h.Import)
	}
}

func (h *SuggestionHandler) Random(c *gin.Context) {
	recipes, err := h.suggestions.GetRandomRecipes(c.Request.Context(), number(c))
	if err != nil {
		h.logger.Error("failed to fetch suggestions", zap.Error(err))
		respondError(c, http.StatusBadGateway, "Failed to fetch recipe suggestions")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"recipes":      recipes,
		"apiAvailable": h.suggestions.IsAPIAvailable(),
	})
}

// SearchByIngredients takes a comma separated ?ingredients= list
func (h *SuggestionHandler) SearchByIngredients(c *gin.Context) {
	var ingredients []string
	for _, ing := range strings.Split(c.Query("ingredients"), ",") {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	if len(ingredients) == 0 {
		respondError(c, http.StatusBadRequest, "At least one ingredient is required")
		return
	}

	recipes, err := h.suggestions.SearchByIngredients(c.Request.Context(), ingredients, number(c))
	if err != nil {
		h.logger.Error("failed to search suggestions", zap.Error(err))
		respondError(c, http.StatusBadGateway, "Failed to search recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes})
}

func (h *SuggestionHandler) Details(c *gin.Context) {
	recipe, err := h.suggestions.GetRecipeDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, format.Capitalize(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// Import copies a suggestion into the caller's recipes
func (h *SuggestionHandler) Import(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	external, err := h.suggestions.FindRecipe(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrSuggestionNotFound) {
		respondError(c, http.StatusNotFound, "Suggestion not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load suggestion", zap.String("suggestion_id", c.Param("id")), zap.Error(err))
		respondError(c, http.StatusBadGateway, "Failed to fetch recipe details")
		return
	}

	input := service.ConvertToLocalFormat(*external)
	respondResult(c, http.StatusCreated, h.recipeService.CreateRecipe(c.Request.Context(), input, userID))
}

// number reads ?number=, returning 0 (the service default) when absent or invalid
func number(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("number"))
	if err != nil {
		return 0
	}
	return n
}
