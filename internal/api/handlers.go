package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Dependencies are the services the HTTP API is built from. The rate
// limiters are optional.
type Dependencies struct {
	AuthService       service.IAuthService
	RecipeService     service.IRecipeService
	SuggestionService service.ISuggestionService
	LoginLimiter      *middleware.RateLimiter
	CreationLimiter   *middleware.RateLimiter
	Logger            *zap.Logger
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe Box API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router.GET("/health", HealthCheck)

	authHandler := NewAuthHandler(deps.AuthService, deps.LoginLimiter, deps.Logger)
	recipeHandler := NewRecipeHandler(deps.RecipeService, deps.AuthService, deps.CreationLimiter, deps.Logger)
	suggestionHandler := NewSuggestionHandler(deps.SuggestionService, deps.RecipeService, deps.AuthService, deps.Logger)

	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck)
	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	suggestionHandler.RegisterRoutes(v1)
}
