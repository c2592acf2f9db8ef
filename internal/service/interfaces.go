package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.Account, string, error)
	Login(ctx context.Context, email, password string) (*model.Account, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.Account, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GetAllRecipes(ctx context.Context, searchTerm, category, sortBy string) ([]model.Recipe, error)
	GetRecipeByID(ctx context.Context, id string) (*model.Recipe, bool, error)
	CreateRecipe(ctx context.Context, input model.RecipeInput, userID string) Result
	UpdateRecipe(ctx context.Context, id string, input model.RecipeInput, userID string) Result
	DeleteRecipe(ctx context.Context, id, userID string) DeleteResult
	GetRecipesByUser(ctx context.Context, userID string) ([]model.Recipe, error)
	GetRecipesByCategory(ctx context.Context, category string) ([]model.Recipe, error)
	SearchRecipes(ctx context.Context, q string) ([]model.Recipe, error)
	GetRecipeStats(ctx context.Context, userID string) (*model.RecipeStats, error)
	GetCategories(ctx context.Context) ([]string, error)
}

// ISuggestionService defines the interface for external recipe suggestions
type ISuggestionService interface {
	GetRandomRecipes(ctx context.Context, n int) ([]ExternalRecipe, error)
	SearchByIngredients(ctx context.Context, ingredients []string, n int) ([]ExternalRecipe, error)
	GetRecipeDetails(ctx context.Context, id string) (*ExternalRecipe, error)
	FindRecipe(ctx context.Context, id string) (*ExternalRecipe, error)
	IsAPIAvailable() bool
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ ISuggestionService = (*SuggestionService)(nil)
)
