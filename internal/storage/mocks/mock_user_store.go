package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/venuebook/internal/storage"
)

// MockUserStore is a mock implementation of storage.UserStore.
type MockUserStore struct {
	mock.Mock
}

//nolint:revive
func (m *MockUserStore) ListActiveByRole(ctx context.Context, role string) ([]storage.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.User), args.Error(1)
}

//nolint:revive
func (m *MockUserStore) Save(ctx context.Context, u storage.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
