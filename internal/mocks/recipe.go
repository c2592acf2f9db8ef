package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) GetAllRecipes(ctx context.Context, searchTerm, category, sortBy string) ([]model.Recipe, error) {
	args := m.Called(ctx, searchTerm, category, sortBy)
	return recipes(args.Get(0)), args.Error(1)
}

func (m *MockRecipeService) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Recipe), args.Bool(1), args.Error(2)
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, input model.RecipeInput, userID string) service.Result {
	args := m.Called(ctx, input, userID)
	return args.Get(0).(service.Result)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id string, input model.RecipeInput, userID string) service.Result {
	args := m.Called(ctx, id, input, userID)
	return args.Get(0).(service.Result)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id, userID string) service.DeleteResult {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(service.DeleteResult)
}

func (m *MockRecipeService) GetRecipesByUser(ctx context.Context, userID string) ([]model.Recipe, error) {
	args := m.Called(ctx, userID)
	return recipes(args.Get(0)), args.Error(1)
}

func (m *MockRecipeService) GetRecipesByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	args := m.Called(ctx, category)
	return recipes(args.Get(0)), args.Error(1)
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, q string) ([]model.Recipe, error) {
	args := m.Called(ctx, q)
	return recipes(args.Get(0)), args.Error(1)
}

func (m *MockRecipeService) GetRecipeStats(ctx context.Context, userID string) (*model.RecipeStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeStats), args.Error(1)
}

func (m *MockRecipeService) GetCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func recipes(v interface{}) []model.Recipe {
	if v == nil {
		return nil
	}
	return v.([]model.Recipe)
}

var _ service.IRecipeService = (*MockRecipeService)(nil)
