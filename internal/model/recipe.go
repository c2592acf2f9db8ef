package model

import "time"

// Recipe is a stored recipe. Field names match the persisted JSON layout.
type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	PrepTime     string    `json:"prepTime"`
	CookTime     string    `json:"cookTime"`
	Servings     string    `json:"servings"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RecipeInput is the caller supplied payload for creating or updating a recipe
type RecipeInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	PrepTime     string   `json:"prepTime"`
	CookTime     string   `json:"cookTime"`
	Servings     string   `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// CategoryCount is one row of a category breakdown
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// RecipeStats summarises one user's recipes
type RecipeStats struct {
	TotalRecipes      int             `json:"totalRecipes"`
	CategoriesUsed    int             `json:"categoriesUsed"`
	CategoryBreakdown []CategoryCount `json:"categoryBreakdown"`
	AveragePrepTime   int             `json:"averagePrepTime"`
}

// DefaultCategories is the starter category set used until categories are saved.
var DefaultCategories = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Dessert",
	"Snack",
	"Vegetarian",
	"Quick & Easy",
}
