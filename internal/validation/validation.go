// Package validation holds the input rules shared by the recipe and auth services.
package validation

import (
	"regexp"
	"strings"

	"github.com/pageza/recipebox/backend/internal/model"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRecipe returns every rule the input breaks, in a fixed order.
// An empty result means the input is valid.
func ValidateRecipe(input model.RecipeInput) []string {
	errs := []string{}
	if strings.TrimSpace(input.Title) == "" {
		errs = append(errs, "Title is required")
	}
	if input.Category == "" {
		errs = append(errs, "Category is required")
	}
	if !hasContent(input.Ingredients) {
		errs = append(errs, "At least one ingredient is required")
	}
	if !hasContent(input.Instructions) {
		errs = append(errs, "At least one instruction is required")
	}
	return errs
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}
