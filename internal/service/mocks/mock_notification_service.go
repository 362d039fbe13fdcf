package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/notification"
	"github.com/shaharia-lab/venuebook/internal/storage"
)

// MockNotificationService is a mock implementation of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

//nolint:revive
func (m *MockNotificationService) GetTransport(ctx context.Context) (*config.TransportConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.TransportConfig), args.Error(1)
}

//nolint:revive
func (m *MockNotificationService) UpdateTransport(ctx context.Context, cfg *config.TransportConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

//nolint:revive
func (m *MockNotificationService) TestConnectivity(ctx context.Context, to string) notification.Result {
	args := m.Called(ctx, to)
	return args.Get(0).(notification.Result)
}

//nolint:revive
func (m *MockNotificationService) VerifyTransport(ctx context.Context) notification.Verification {
	args := m.Called(ctx)
	return args.Get(0).(notification.Verification)
}

//nolint:revive
func (m *MockNotificationService) ListLog(ctx context.Context, limit int) ([]storage.NotificationLogEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.NotificationLogEntry), args.Error(1)
}

//nolint:revive
func (m *MockNotificationService) PublishEvent(eventType string, payload map[string]string) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}
