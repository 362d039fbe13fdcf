package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/venuebook/internal/notification"
)

// MockSender is a mock implementation of notification.Sender.
type MockSender struct {
	mock.Mock
}

//nolint:revive
func (m *MockSender) Send(ctx context.Context, req notification.Request) notification.Result {
	return m.Called(ctx, req).Get(0).(notification.Result)
}
