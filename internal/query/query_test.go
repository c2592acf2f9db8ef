package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipebox/backend/internal/model"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func fixtures() []model.Recipe {
	return []model.Recipe{
		{ID: "a", Title: "banana Bread", Description: "Moist loaf", Category: "Desserts", PrepTime: "20", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b", Title: "Apple Pie", Description: "Classic dessert with cinnamon", Category: "Desserts", PrepTime: "45", CreatedAt: base},
		{ID: "c", Title: "Caesar Salad", Description: "Crisp romaine", Category: "Lunch", PrepTime: "abc", CreatedAt: base.Add(time.Hour)},
		{ID: "d", Title: "Omelette", Description: "Quick eggs", Category: "Breakfast", PrepTime: "5 minutes", CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	recipes := fixtures()

	tests := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{"empty matches all", "", "", []string{"a", "b", "c", "d"}},
		{"title case-insensitive", "APPLE", "", []string{"b"}},
		{"description match", "cinnamon", "", []string{"b"}},
		{"no match", "romaine lettuce", "", []string{}},
		{"category exact", "", "Desserts", []string{"a", "b"}},
		{"category is case sensitive", "", "desserts", []string{}},
		{"term and category", "loaf", "Desserts", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(recipes, tt.term, tt.category)))
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	once := Filter(fixtures(), "e", "Desserts")
	twice := Filter(once, "e", "Desserts")
	assert.Equal(t, once, twice)
}

func TestSort(t *testing.T) {
	tests := []struct {
		sortBy string
		want   []string
	}{
		{SortTitle, []string{"b", "a", "c", "d"}},
		{SortNewest, []string{"d", "a", "c", "b"}},
		{SortOldest, []string{"b", "c", "a", "d"}},
		{SortCategory, []string{"d", "a", "b", "c"}},
		{SortPrepTime, []string{"c", "d", "a", "b"}},
		{"unknown", []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Sort(fixtures(), tt.sortBy)))
		})
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	recipes := fixtures()
	_ = Sort(recipes, SortTitle)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(recipes))
}

func TestSortIsStable(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "1", Category: "Lunch", CreatedAt: base},
		{ID: "2", Category: "Dinner", CreatedAt: base},
		{ID: "3", Category: "Lunch", CreatedAt: base},
	}
	assert.Equal(t, []string{"2", "1", "3"}, ids(Sort(recipes, SortCategory)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(Sort(recipes, SortNewest)))
}

func TestSortPreservesLength(t *testing.T) {
	for _, key := range []string{SortTitle, SortNewest, SortOldest, SortCategory, SortPrepTime, ""} {
		assert.Len(t, Sort(fixtures(), key), 4)
	}
	assert.Empty(t, Sort(nil, SortTitle))
}
