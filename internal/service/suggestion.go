package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/pageza/recipebox/backend/internal/format"
	"github.com/pageza/recipebox/backend/internal/model"
)

const (
	defaultSuggestionCount = 6
	placeholderAPIKey      = "your_api_key_here"
	importedCategory       = "Imported"
	summaryLimit           = 200
)

var (
	ErrSuggestionNotFound  = errors.New("suggestion not found")
	ErrDetailsNotAvailable = errors.New("external recipe details not available in demo")

	htmlTag = regexp.MustCompile(`<[^>]*>`)
)

// ExternalIngredient is one ingredient line of an external recipe
type ExternalIngredient struct {
	Original string `json:"original"`
}

type InstructionStep struct {
	Step string `json:"step"`
}

type InstructionGroup struct {
	Steps []InstructionStep `json:"steps"`
}

// ExternalRecipe is a recipe in the suggestions provider's format
type ExternalRecipe struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	ReadyInMinutes        int                  `json:"readyInMinutes,omitempty"`
	Servings              int                  `json:"servings,omitempty"`
	Image                 string               `json:"image"`
	Summary               string               `json:"summary,omitempty"`
	ExtendedIngredients   []ExternalIngredient `json:"extendedIngredients,omitempty"`
	AnalyzedInstructions  []InstructionGroup   `json:"analyzedInstructions,omitempty"`
	UsedIngredientCount   int                  `json:"usedIngredientCount,omitempty"`
	MissedIngredientCount int                  `json:"missedIngredientCount,omitempty"`
}

// SuggestionService serves recipe suggestions. No provider is called; the
// catalogue is fixed.
type SuggestionService struct {
	apiKey string
}

func NewSuggestionService(apiKey string) *SuggestionService {
	return &SuggestionService{apiKey: apiKey}
}

// IsAPIAvailable reports whether a real provider key is configured
func (s *SuggestionService) IsAPIAvailable() bool {
	return s.apiKey != "" && s.apiKey != placeholderAPIKey
}

// GetRandomRecipes returns up to n catalogue recipes. n <= 0 means the default of six.
func (s *SuggestionService) GetRandomRecipes(_ context.Context, n int) ([]ExternalRecipe, error) {
	return limit(catalogue(), n), nil
}

func (s *SuggestionService) SearchByIngredients(_ context.Context, ingredients []string, n int) ([]ExternalRecipe, error) {
	results := []ExternalRecipe{{
		ID:                    "search_1",
		Title:                 "Quick Pasta Salad",
		Image:                 "https://via.placeholder.com/312x231?text=Pasta+Salad",
		UsedIngredientCount:   2,
		MissedIngredientCount: 1,
	}}
	return limit(results, n), nil
}

// GetRecipeDetails always fails: the provider's detail endpoint is not wired
func (s *SuggestionService) GetRecipeDetails(_ context.Context, id string) (*ExternalRecipe, error) {
	return nil, ErrDetailsNotAvailable
}

// FindRecipe looks a recipe up in the catalogue, for importing
func (s *SuggestionService) FindRecipe(_ context.Context, id string) (*ExternalRecipe, error) {
	for _, r := range catalogue() {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, ErrSuggestionNotFound
}

// ConvertToLocalFormat maps an external recipe onto recipe input in the
// Imported category
func ConvertToLocalFormat(r ExternalRecipe) model.RecipeInput {
	ingredients := make([]string, 0, len(r.ExtendedIngredients))
	for _, ing := range r.ExtendedIngredients {
		ingredients = append(ingredients, ing.Original)
	}

	instructions := []string{}
	if len(r.AnalyzedInstructions) > 0 {
		for _, step := range r.AnalyzedInstructions[0].Steps {
			instructions = append(instructions, step.Step)
		}
	}

	input := model.RecipeInput{
		Title:        r.Title,
		Description:  format.Truncate(htmlTag.ReplaceAllString(r.Summary, ""), summaryLimit),
		Category:     importedCategory,
		PrepTime:     "10",
		CookTime:     "30",
		Servings:     "4",
		Ingredients:  ingredients,
		Instructions: instructions,
	}
	if r.ReadyInMinutes > 0 {
		input.CookTime = strconv.Itoa(r.ReadyInMinutes)
	}
	if r.Servings > 0 {
		input.Servings = strconv.Itoa(r.Servings)
	}
	return input
}

func limit(recipes []ExternalRecipe, n int) []ExternalRecipe {
	if n <= 0 {
		n = defaultSuggestionCount
	}
	if len(recipes) > n {
		return recipes[:n]
	}
	return recipes
}

func ingredientsOf(lines ...string) []ExternalIngredient {
	out := make([]ExternalIngredient, len(lines))
	for i, l := range lines {
		out[i] = ExternalIngredient{Original: l}
	}
	return out
}

func stepsOf(lines ...string) []InstructionGroup {
	steps := make([]InstructionStep, len(lines))
	for i, l := range lines {
		steps[i] = InstructionStep{Step: l}
	}
	return []InstructionGroup{{Steps: steps}}
}

func catalogue() []ExternalRecipe {
	return []ExternalRecipe{
		{
			ID:             "api_1",
			Title:          "Spaghetti Carbonara",
			ReadyInMinutes: 30,
			Servings:       4,
			Image:          "https://via.placeholder.com/312x231?text=Carbonara",
			Summary:        "A classic Italian pasta dish with eggs, cheese, and pancetta.",
			ExtendedIngredients: ingredientsOf(
				"400g spaghetti",
				"200g pancetta, diced",
				"4 large eggs",
				"100g Parmesan cheese, grated",
				"Black pepper to taste",
			),
			AnalyzedInstructions: stepsOf(
				"Cook spaghetti according to package instructions.",
				"Fry pancetta until crispy.",
				"Beat eggs with Parmesan cheese.",
				"Toss hot pasta with pancetta and egg mixture.",
				"Season with black pepper and serve immediately.",
			),
		},
		{
			ID:             "api_2",
			Title:          "Chicken Stir Fry",
			ReadyInMinutes: 20,
			Servings:       4,
			Image:          "https://via.placeholder.com/312x231?text=Stir+Fry",
			Summary:        "Quick and healthy chicken stir fry with vegetables.",
			ExtendedIngredients: ingredientsOf(
				"500g chicken breast, sliced",
				"2 bell peppers, sliced",
				"1 onion, sliced",
				"2 cloves garlic, minced",
				"3 tbsp soy sauce",
				"2 tbsp vegetable oil",
			),
			AnalyzedInstructions: stepsOf(
				"Heat oil in a wok or large pan.",
				"Cook chicken until browned and cooked through.",
				"Add vegetables and garlic, stir fry for 3-4 minutes.",
				"Add soy sauce and toss to combine.",
				"Serve hot with rice.",
			),
		},
		{
			ID:             "api_3",
			Title:          "Chocolate Chip Cookies",
			ReadyInMinutes: 25,
			Servings:       24,
			Image:          "https://via.placeholder.com/312x231?text=Cookies",
			Summary:        "Classic homemade chocolate chip cookies.",
			ExtendedIngredients: ingredientsOf(
				"2 cups all-purpose flour",
				"1 cup butter, softened",
				"3/4 cup brown sugar",
				"1/2 cup white sugar",
				"2 eggs",
				"2 cups chocolate chips",
			),
			AnalyzedInstructions: stepsOf(
				"Preheat oven to 375°F (190°C).",
				"Cream butter and sugars together.",
				"Beat in eggs one at a time.",
				"Mix in flour gradually.",
				"Fold in chocolate chips.",
				"Bake for 9-11 minutes until golden brown.",
			),
		},
	}
}
