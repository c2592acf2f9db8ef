// Package identity holds the signed-in user on the client side.
package identity

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/model"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// UserStore persists the current user between runs. *storage.Storage satisfies it.
type UserStore interface {
	GetCurrentUser(ctx context.Context) (*model.User, error)
	SaveCurrentUser(ctx context.Context, user *model.User) error
	RemoveCurrentUser(ctx context.Context) error
}

// AuthResult is the uniform outcome of a login or register call
type AuthResult struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user,omitempty"`
	Token   string      `json:"token,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Authenticator talks to the auth server
type Authenticator interface {
	Login(ctx context.Context, email, password string) AuthResult
	Register(ctx context.Context, name, email, password string) AuthResult
}

// Context holds at most one current user. Reads never touch the network or
// the store; only Login and Register call the Authenticator.
type Context struct {
	store  UserStore
	auth   Authenticator
	logger *zap.Logger

	mu   sync.RWMutex
	user *model.User
}

// New loads the persisted user once. A store failure leaves the context
// signed out and is returned alongside it.
func New(ctx context.Context, store UserStore, auth Authenticator, logger *zap.Logger) (*Context, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Context{store: store, auth: auth, logger: logger}

	user, err := store.GetCurrentUser(ctx)
	if err != nil {
		logger.Warn("could not load current user", zap.Error(err))
		return c, err
	}
	c.user = user
	return c, nil
}

func (c *Context) Login(ctx context.Context, email, password string) AuthResult {
	res := c.auth.Login(ctx, email, password)
	c.adopt(ctx, res)
	return res
}

func (c *Context) Register(ctx context.Context, name, email, password string) AuthResult {
	res := c.auth.Register(ctx, name, email, password)
	c.adopt(ctx, res)
	return res
}

// adopt takes over the user of a successful result and persists it. The
// session stays valid in memory if persisting fails.
func (c *Context) adopt(ctx context.Context, res AuthResult) {
	if !res.Success || res.User == nil {
		return
	}
	user := *res.User

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	if err := c.store.SaveCurrentUser(ctx, &user); err != nil {
		c.logger.Warn("could not persist current user", zap.String("user_id", user.ID), zap.Error(err))
	}
}

// Logout forgets the user in memory and in the store
func (c *Context) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()
	return c.store.RemoveCurrentUser(ctx)
}

// CurrentUser returns a copy of the held user, or nil
func (c *Context) CurrentUser() *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// UserID is the id of the held user, or "" when signed out
func (c *Context) UserID() string {
	if u := c.CurrentUser(); u != nil {
		return u.ID
	}
	return ""
}

func (c *Context) IsAuthenticated() bool {
	return c.CurrentUser() != nil
}

// UpdateCurrentUser merges the non-empty name and email of patch into the
// held user and persists the result. The id never changes.
func (c *Context) UpdateCurrentUser(ctx context.Context, patch model.User) (*model.User, error) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	updated := *c.user
	if patch.Name != "" {
		updated.Name = patch.Name
	}
	if patch.Email != "" {
		updated.Email = patch.Email
	}
	c.user = &updated
	c.mu.Unlock()

	if err := c.store.SaveCurrentUser(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ValidateSession succeeds when a user is held. Sessions are not checked
// against the server.
func (c *Context) ValidateSession() error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}
