package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionsEndpoints(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/suggestions?number=2", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Recipes      []map[string]interface{} `json:"recipes"`
		APIAvailable bool                     `json:"apiAvailable"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Recipes, 2)
	assert.False(t, list.APIAvailable)

	w = s.do(t, http.MethodGet, "/api/v1/suggestions/search?ingredients=pasta,%20tomato", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Quick Pasta Salad")

	w = s.do(t, http.MethodGet, "/api/v1/suggestions/search?ingredients=", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/suggestions/api_1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"External recipe details not available in demo"}`, w.Body.String())
}

func TestImportSuggestion(t *testing.T) {
	s := setupTestServer(t)
	userID, token := s.register(t, "Ada", "ada@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/suggestions/api_3/import", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/suggestions/api_404/import", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/suggestions/api_3/import", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp recipeResponse
	decode(t, w, &resp)
	assert.Equal(t, "Chocolate Chip Cookies", resp.Recipe.Title)
	assert.Equal(t, "Imported", resp.Recipe.Category)
	assert.Equal(t, "25", resp.Recipe.CookTime)
	assert.Equal(t, "24", resp.Recipe.Servings)
	assert.Equal(t, userID, resp.Recipe.CreatedBy)
}
