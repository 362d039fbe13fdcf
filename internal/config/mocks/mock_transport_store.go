package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/venuebook/internal/config"
)

// MockTransportStore is a mock implementation of config.TransportStore.
type MockTransportStore struct {
	mock.Mock
}

//nolint:revive
func (m *MockTransportStore) Load(ctx context.Context) (config.TransportConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(config.TransportConfig), args.Error(1)
}

//nolint:revive
func (m *MockTransportStore) Save(ctx context.Context, cfg config.TransportConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
