// Package query filters and orders recipe listings without touching storage.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pageza/recipebox/backend/internal/format"
	"github.com/pageza/recipebox/backend/internal/model"
)

// Sort keys accepted by Sort
const (
	SortTitle    = "title"
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortCategory = "category"
	SortPrepTime = "prepTime"
)

// Filter keeps recipes whose title or description contains searchTerm
// (case-insensitive) and whose category equals category. Empty values
// match everything. The input slice is not modified.
func Filter(recipes []model.Recipe, searchTerm, category string) []model.Recipe {
	term := strings.ToLower(searchTerm)
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort returns a stably ordered copy of recipes. Unknown keys keep the
// input order.
func Sort(recipes []model.Recipe, sortBy string) []model.Recipe {
	out := append(make([]model.Recipe, 0, len(recipes)), recipes...)

	var less func(a, b *model.Recipe) bool
	switch sortBy {
	case SortTitle:
		c := collate.New(language.English)
		less = func(a, b *model.Recipe) bool { return c.CompareString(a.Title, b.Title) < 0 }
	case SortCategory:
		c := collate.New(language.English)
		less = func(a, b *model.Recipe) bool { return c.CompareString(a.Category, b.Category) < 0 }
	case SortNewest:
		less = func(a, b *model.Recipe) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortOldest:
		less = func(a, b *model.Recipe) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortPrepTime:
		less = func(a, b *model.Recipe) bool { return format.ParseInt(a.PrepTime) < format.ParseInt(b.PrepTime) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}
