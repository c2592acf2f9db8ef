package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/model"
)

// Storage layers typed JSON collections over a Store.
// Absent keys are not errors: accessors return empty values or defaults.
// Failures are logged here and returned so callers decide how to degrade.
type Storage struct {
	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Storage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Storage{store: store, logger: logger}
}

// Get decodes the value at key into out and reports whether it existed
func (s *Storage) Get(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("error reading from store", zap.String("key", key), zap.Error(err))
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Error("error decoding stored value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// Set encodes value as JSON and writes it at key
func (s *Storage) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("error encoding value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		s.logger.Error("error saving to store", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if err := s.store.Remove(ctx, key); err != nil {
		s.logger.Error("error removing from store", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *Storage) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("error clearing store", zap.Error(err))
		return err
	}
	return nil
}

func (s *Storage) GetRecipes(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if _, err := s.Get(ctx, KeyRecipes, &recipes); err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return recipes, nil
}

func (s *Storage) SaveRecipes(ctx context.Context, recipes []model.Recipe) error {
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return s.Set(ctx, KeyRecipes, recipes)
}

// GetCategories returns the saved categories, or the starter set when none are saved
func (s *Storage) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	found, err := s.Get(ctx, KeyCategories, &categories)
	if err != nil {
		return nil, err
	}
	if !found || categories == nil {
		return append([]string(nil), model.DefaultCategories...), nil
	}
	return categories, nil
}

func (s *Storage) SaveCategories(ctx context.Context, categories []string) error {
	return s.Set(ctx, KeyCategories, categories)
}

// GetCurrentUser returns nil without error when nobody is logged in
func (s *Storage) GetCurrentUser(ctx context.Context) (*model.User, error) {
	var user *model.User
	if _, err := s.Get(ctx, KeyCurrentUser, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) SaveCurrentUser(ctx context.Context, user *model.User) error {
	return s.Set(ctx, KeyCurrentUser, user)
}

func (s *Storage) RemoveCurrentUser(ctx context.Context) error {
	return s.Remove(ctx, KeyCurrentUser)
}

func (s *Storage) GetUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if _, err := s.Get(ctx, KeyUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *Storage) SaveUsers(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	return s.Set(ctx, KeyUsers, users)
}

// InitializeData seeds categories, users and a sample recipe. Each key is
// written only when absent, so repeated calls never overwrite data.
func (s *Storage) InitializeData(ctx context.Context) error {
	var raw json.RawMessage

	found, err := s.Get(ctx, KeyCategories, &raw)
	if err != nil {
		return err
	}
	if !found {
		if err := s.SaveCategories(ctx, model.DefaultCategories); err != nil {
			return err
		}
	}

	found, err = s.Get(ctx, KeyUsers, &raw)
	if err != nil {
		return err
	}
	if !found {
		if err := s.SaveUsers(ctx, nil); err != nil {
			return err
		}
	}

	found, err = s.Get(ctx, KeyRecipes, &raw)
	if err != nil {
		return err
	}
	if !found {
		if err := s.SaveRecipes(ctx, []model.Recipe{SampleRecipe(time.Now())}); err != nil {
			return err
		}
		s.logger.Info("seeded sample recipe")
	}
	return nil
}

// SampleRecipe is the recipe seeded into an empty store
func SampleRecipe(now time.Time) model.Recipe {
	now = now.UTC().Truncate(time.Millisecond)
	return model.Recipe{
		ID:          "1",
		Title:       "Classic Pancakes",
		Description: "Fluffy and delicious pancakes perfect for breakfast",
		Category:    "Breakfast",
		PrepTime:    "10",
		CookTime:    "15",
		Servings:    "4",
		Ingredients: []string{
			"2 cups all-purpose flour",
			"2 tablespoons sugar",
			"2 teaspoons baking powder",
			"1/2 teaspoon salt",
			"2 eggs",
			"1 1/2 cups milk",
			"1/4 cup melted butter",
		},
		Instructions: []string{
			"Mix dry ingredients in a large bowl",
			"Whisk eggs, milk, and melted butter in another bowl",
			"Combine wet and dry ingredients until just mixed",
			"Heat a lightly oiled griddle over medium-high heat",
			"Pour batter onto the griddle and cook until bubbles form",
			"Flip and cook until golden brown",
		},
		CreatedBy: "demo",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
