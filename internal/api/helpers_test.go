package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

type testServer struct {
	router *gin.Engine
	store  *storage.Storage
	mem    *storage.MemoryStore
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	mem := storage.NewMemoryStore()
	store := storage.New(mem, logger)
	require.NoError(t, store.InitializeData(context.Background()))

	db := testhelpers.SetupSQLiteDB(t)
	authService := service.NewAuthService(db, "test-secret", logger).WithHashCost(bcrypt.MinCost)

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	RegisterRoutes(router, Dependencies{
		AuthService:       authService,
		RecipeService:     service.NewRecipeService(store, logger),
		SuggestionService: service.NewSuggestionService(""),
		Logger:            logger,
	})

	return &testServer{router: router, store: store, mem: mem}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its id and token
func (s *testServer) register(t *testing.T, name, email string) (string, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID, resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
