package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipebox/backend/internal/types"
)

func TestRegisterEndpoint(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "secret1",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp types.AuthResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, w.Body.String(), "secret1")
}

func TestRegisterEndpointErrors(t *testing.T) {
	s := setupTestServer(t)
	s.register(t, "Ada", "ada@example.com")

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantError  string
	}{
		{"not json", "garbage", http.StatusBadRequest, "Name, email, and password are required"},
		{"missing password", types.RegisterRequest{Name: "Bob", Email: "bob@example.com"}, http.StatusBadRequest, "Name, email, and password are required"},
		{"blank name", types.RegisterRequest{Name: "  ", Email: "bob@example.com", Password: "secret1"}, http.StatusBadRequest, "Name cannot be empty"},
		{"bad email", types.RegisterRequest{Name: "Bob", Email: "bob", Password: "secret1"}, http.StatusBadRequest, "Invalid email format"},
		{"short password", types.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "123"}, http.StatusBadRequest, "Password must be at least 6 characters long"},
		{"taken email", types.RegisterRequest{Name: "Bob", Email: "ada@example.com", Password: "secret1"}, http.StatusConflict, "Email is already registered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"`+tt.wantError+`"}`, w.Body.String())
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	s := setupTestServer(t)
	id, _ := s.register(t, "Ada", "ada@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{Email: "ada@example.com", Password: "secret1"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp types.AuthResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, id, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	s := setupTestServer(t)
	s.register(t, "Ada", "ada@example.com")

	for _, req := range []types.LoginRequest{
		{Email: "ada@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "secret1"},
	} {
		w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"Invalid credentials"}`, w.Body.String())
	}

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{Email: "ada@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Email and password are required"}`, w.Body.String())
}

func TestSessionEndpoint(t *testing.T) {
	s := setupTestServer(t)
	id, token := s.register(t, "Ada", "ada@example.com")

	w := s.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp types.AuthResponse
	decode(t, w, &resp)
	assert.Equal(t, id, resp.User.ID)

	w = s.do(t, http.MethodGet, "/api/v1/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
