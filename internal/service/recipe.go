package service

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/format"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/query"
	"github.com/pageza/recipebox/backend/internal/validation"
)

// Reason classifies a failed mutation so transports can pick a status code
type Reason string

const (
	ReasonValidation Reason = "validation"
	ReasonNotFound   Reason = "not_found"
	ReasonForbidden  Reason = "forbidden"
	ReasonStorage    Reason = "storage"
)

const (
	msgRecipeNotFound = "Recipe not found"
	msgEditForbidden  = "You can only edit your own recipes"
	msgDeleteForbid   = "You can only delete your own recipes"
	msgCreateFailed   = "Failed to create recipe. Please try again."
	msgUpdateFailed   = "Failed to update recipe. Please try again."
	msgDeleteFailed   = "Failed to delete recipe. Please try again."
)

// Result is the outcome of a create or update
type Result struct {
	Success bool          `json:"success"`
	Recipe  *model.Recipe `json:"recipe,omitempty"`
	Errors  []string      `json:"errors,omitempty"`
	Reason  Reason        `json:"-"`
}

// DeleteResult is the outcome of a delete
type DeleteResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Reason  Reason `json:"-"`
}

func failure(reason Reason, errs ...string) Result {
	return Result{Success: false, Errors: errs, Reason: reason}
}

// RecipeStore is the persistence RecipeService needs. *storage.Storage satisfies it.
type RecipeStore interface {
	GetRecipes(ctx context.Context) ([]model.Recipe, error)
	SaveRecipes(ctx context.Context, recipes []model.Recipe) error
	GetCategories(ctx context.Context) ([]string, error)
}

// RecipeService owns the recipe collection. Every mutation loads the whole
// collection, changes it and writes it back.
type RecipeService struct {
	store  RecipeStore
	logger *zap.Logger
	now    func() time.Time

	// serialises read-modify-write cycles within this process
	mu sync.Mutex
}

func NewRecipeService(store RecipeStore, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source, for tests
func (s *RecipeService) WithClock(now func() time.Time) *RecipeService {
	s.now = now
	return s
}

func (s *RecipeService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// GetAllRecipes filters then sorts the collection. An empty sortBy means newest first.
func (s *RecipeService) GetAllRecipes(ctx context.Context, searchTerm, category, sortBy string) ([]model.Recipe, error) {
	recipes, err := s.store.GetRecipes(ctx)
	if err != nil {
		return nil, err
	}
	if sortBy == "" {
		sortBy = query.SortNewest
	}
	return query.Sort(query.Filter(recipes, searchTerm, category), sortBy), nil
}

// GetRecipeByID reports false when no recipe has the id
func (s *RecipeService) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, bool, error) {
	recipes, err := s.store.GetRecipes(ctx)
	if err != nil {
		return nil, false, err
	}
	if i := indexOf(recipes, id); i >= 0 {
		r := recipes[i]
		return &r, true, nil
	}
	return nil, false, nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, input model.RecipeInput, userID string) Result {
	if errs := validation.ValidateRecipe(input); len(errs) > 0 {
		return failure(ReasonValidation, errs...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.store.GetRecipes(ctx)
	if err != nil {
		return failure(ReasonStorage, msgCreateFailed)
	}

	now := s.timestamp()
	recipe := model.Recipe{
		ID:        uuid.NewString(),
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(&recipe, input)

	recipes = append(recipes, recipe)
	if err := s.store.SaveRecipes(ctx, recipes); err != nil {
		return failure(ReasonStorage, msgCreateFailed)
	}

	s.logger.Info("recipe created", zap.String("recipe_id", recipe.ID), zap.String("user_id", userID))
	return Result{Success: true, Recipe: &recipe}
}

// UpdateRecipe checks existence, then ownership, then the input itself.
// id, createdBy and createdAt never change.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, input model.RecipeInput, userID string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.store.GetRecipes(ctx)
	if err != nil {
		return failure(ReasonStorage, msgUpdateFailed)
	}

	i := indexOf(recipes, id)
	if i < 0 {
		return failure(ReasonNotFound, msgRecipeNotFound)
	}
	if recipes[i].CreatedBy != userID {
		return failure(ReasonForbidden, msgEditForbidden)
	}
	if errs := validation.ValidateRecipe(input); len(errs) > 0 {
		return failure(ReasonValidation, errs...)
	}

	updated := recipes[i]
	applyInput(&updated, input)
	updated.UpdatedAt = s.timestamp()
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		updated.UpdatedAt = updated.CreatedAt
	}
	recipes[i] = updated

	if err := s.store.SaveRecipes(ctx, recipes); err != nil {
		return failure(ReasonStorage, msgUpdateFailed)
	}

	s.logger.Info("recipe updated", zap.String("recipe_id", id), zap.String("user_id", userID))
	return Result{Success: true, Recipe: &updated}
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID string) DeleteResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.store.GetRecipes(ctx)
	if err != nil {
		return DeleteResult{Error: msgDeleteFailed, Reason: ReasonStorage}
	}

	i := indexOf(recipes, id)
	if i < 0 {
		return DeleteResult{Error: msgRecipeNotFound, Reason: ReasonNotFound}
	}
	if recipes[i].CreatedBy != userID {
		return DeleteResult{Error: msgDeleteForbid, Reason: ReasonForbidden}
	}

	recipes = append(recipes[:i], recipes[i+1:]...)
	if err := s.store.SaveRecipes(ctx, recipes); err != nil {
		return DeleteResult{Error: msgDeleteFailed, Reason: ReasonStorage}
	}

	s.logger.Info("recipe deleted", zap.String("recipe_id", id), zap.String("user_id", userID))
	return DeleteResult{Success: true}
}

func (s *RecipeService) GetRecipesByUser(ctx context.Context, userID string) ([]model.Recipe, error) {
	return s.filter(ctx, func(r *model.Recipe) bool { return r.CreatedBy == userID })
}

func (s *RecipeService) GetRecipesByCategory(ctx context.Context, category string) ([]model.Recipe, error) {
	return s.filter(ctx, func(r *model.Recipe) bool { return r.Category == category })
}

// SearchRecipes matches q case-insensitively against title, description,
// category and each ingredient
func (s *RecipeService) SearchRecipes(ctx context.Context, q string) ([]model.Recipe, error) {
	term := strings.ToLower(strings.TrimSpace(q))
	return s.filter(ctx, func(r *model.Recipe) bool {
		if strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.Description), term) ||
			strings.Contains(strings.ToLower(r.Category), term) {
			return true
		}
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing), term) {
				return true
			}
		}
		return false
	})
}

// GetRecipeStats summarises the recipes userID created. The breakdown lists
// every known category, including those with no recipes.
func (s *RecipeService) GetRecipeStats(ctx context.Context, userID string) (*model.RecipeStats, error) {
	mine, err := s.GetRecipesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.RecipeStats{
		TotalRecipes:      len(mine),
		CategoryBreakdown: make([]model.CategoryCount, 0, len(categories)),
	}
	for _, c := range categories {
		count := 0
		for _, r := range mine {
			if r.Category == c {
				count++
			}
		}
		if count > 0 {
			stats.CategoriesUsed++
		}
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, model.CategoryCount{Category: c, Count: count})
	}

	if len(mine) > 0 {
		sum := 0
		for _, r := range mine {
			sum += format.ParseInt(r.PrepTime)
		}
		stats.AveragePrepTime = int(math.Floor(float64(sum)/float64(len(mine)) + 0.5))
	}
	return stats, nil
}

func (s *RecipeService) GetCategories(ctx context.Context) ([]string, error) {
	return s.store.GetCategories(ctx)
}

func (s *RecipeService) filter(ctx context.Context, keep func(*model.Recipe) bool) ([]model.Recipe, error) {
	recipes, err := s.store.GetRecipes(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Recipe{}
	for i := range recipes {
		if keep(&recipes[i]) {
			out = append(out, recipes[i])
		}
	}
	return out, nil
}

// applyInput copies validated input onto r. Blank lines are dropped and
// missing numeric fields fall back to their defaults.
func applyInput(r *model.Recipe, in model.RecipeInput) {
	r.Title = strings.TrimSpace(in.Title)
	r.Description = strings.TrimSpace(in.Description)
	r.Category = in.Category
	r.PrepTime = orDefault(in.PrepTime, "0")
	r.CookTime = orDefault(in.CookTime, "0")
	r.Servings = orDefault(in.Servings, "1")
	r.Ingredients = nonBlank(in.Ingredients)
	r.Instructions = nonBlank(in.Instructions)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func indexOf(recipes []model.Recipe, id string) int {
	for i := range recipes {
		if recipes[i].ID == id {
			return i
		}
	}
	return -1
}
