package types

import "github.com/pageza/recipebox/backend/internal/model"

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by the auth endpoints. Error is set when Success is false.
type AuthResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user,omitempty"`
	Token   string      `json:"token,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ParseRequest carries pasted multi-line text for bulk entry
type ParseRequest struct {
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// ParseResponse is the parsed form of a ParseRequest
type ParseResponse struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}
