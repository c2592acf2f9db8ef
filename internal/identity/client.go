package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second

	msgConnectionFailed = "Unable to connect to server. Please check if the server is running."
	msgInvalidResponse  = "Invalid response from server"
)

// HTTPAuthenticator posts credentials as JSON to <baseURL>/login and
// <baseURL>/register
type HTTPAuthenticator struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAuthenticator(baseURL string, client *http.Client) *HTTPAuthenticator {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPAuthenticator{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (a *HTTPAuthenticator) Login(ctx context.Context, email, password string) AuthResult {
	return a.post(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (a *HTTPAuthenticator) Register(ctx context.Context, name, email, password string) AuthResult {
	return a.post(ctx, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (a *HTTPAuthenticator) post(ctx context.Context, path string, payload any) AuthResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return AuthResult{Error: fmt.Sprintf("failed to encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return AuthResult{Error: msgConnectionFailed}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return AuthResult{Error: msgConnectionFailed}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return AuthResult{Error: msgConnectionFailed}
	}

	var result AuthResult
	decodeErr := json.Unmarshal(data, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && result.Error != "" {
			return AuthResult{Error: result.Error}
		}
		return AuthResult{Error: fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)}
	}
	if decodeErr != nil {
		return AuthResult{Error: msgInvalidResponse}
	}
	if result.Success && result.User == nil {
		return AuthResult{Error: msgInvalidResponse}
	}
	if !result.Success && result.Error == "" {
		result.Error = msgInvalidResponse
	}
	return result
}
