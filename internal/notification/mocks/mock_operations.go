package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/venuebook/internal/notification"
)

// MockOperations is a mock implementation of notification.Operations.
type MockOperations struct {
	mock.Mock
}

//nolint:revive
func (m *MockOperations) WelcomeCustomer(ctx context.Context, ec notification.EventContext) notification.Result {
	return m.Called(ctx, ec).Get(0).(notification.Result)
}

//nolint:revive
func (m *MockOperations) WelcomeVendor(ctx context.Context, ec notification.EventContext) notification.Result {
	return m.Called(ctx, ec).Get(0).(notification.Result)
}

//nolint:revive
func (m *MockOperations) NotifyAdminsVendorRegistered(ctx context.Context, ec notification.EventContext) notification.Result {
	return m.Called(ctx, ec).Get(0).(notification.Result)
}

//nolint:revive
func (m *MockOperations) VendorApproved(ctx context.Context, ec notification.EventContext) notification.Result {
	return m.Called(ctx, ec).Get(0).(notification.Result)
}

//nolint:revive
func (m *MockOperations) VendorRejected(ctx context.Context, ec notification.EventContext) notification.Result {
	return m.Called(ctx, ec).Get(0).(notification.Result)
}
