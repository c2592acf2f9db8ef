package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/identity"
	"github.com/pageza/recipebox/backend/internal/model"
)

// MockAuthenticator is a mock implementation of identity.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) identity.AuthResult {
	args := m.Called(ctx, email, password)
	return args.Get(0).(identity.AuthResult)
}

func (m *MockAuthenticator) Register(ctx context.Context, name, email, password string) identity.AuthResult {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(identity.AuthResult)
}

// MockUserStore is a mock implementation of identity.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetCurrentUser(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) SaveCurrentUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) RemoveCurrentUser(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
