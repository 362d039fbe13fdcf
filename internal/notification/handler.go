package notification

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// Business events consumed by the notification handler.
const (
	EventCustomerRegistered = "customer.registered"
	EventVendorRegistered   = "vendor.registered"
	EventVendorApproved     = "vendor.approved"
	EventVendorRejected     = "vendor.rejected"
)

// handleTimeout bounds the deliveries triggered by one event.
const handleTimeout = 30 * time.Second

// Operations is the set of composed notifications an event can trigger.
// Notifier implements it.
type Operations interface {
	WelcomeCustomer(ctx context.Context, ec EventContext) Result
	WelcomeVendor(ctx context.Context, ec EventContext) Result
	NotifyAdminsVendorRegistered(ctx context.Context, ec EventContext) Result
	VendorApproved(ctx context.Context, ec EventContext) Result
	VendorRejected(ctx context.Context, ec EventContext) Result
}

// NotificationHandler maps business events onto notifications.
// The name is intentional: it reads clearly as notification.NotificationHandler.
//
//nolint:revive
type NotificationHandler struct {
	ops    Operations
	logger *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(ops Operations, logger *slog.Logger) *NotificationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationHandler{ops: ops, logger: logger}
}

// KnownEvent reports whether eventType triggers any notification.
func KnownEvent(eventType string) bool {
	switch eventType {
	case EventCustomerRegistered, EventVendorRegistered, EventVendorApproved, EventVendorRejected:
		return true
	}
	return false
}

// Handle delivers the notifications for one event. Results are logged by
// the executor; Handle only reports events it does not recognise.
func (h *NotificationHandler) Handle(eventType string, payload map[string]string) []Result {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	ec := EventContextFromPayload(payload)
	switch eventType {
	case EventCustomerRegistered:
		return []Result{h.ops.WelcomeCustomer(ctx, ec)}
	case EventVendorRegistered:
		return []Result{
			h.ops.WelcomeVendor(ctx, ec),
			h.ops.NotifyAdminsVendorRegistered(ctx, ec),
		}
	case EventVendorApproved:
		return []Result{h.ops.VendorApproved(ctx, ec)}
	case EventVendorRejected:
		return []Result{h.ops.VendorRejected(ctx, ec)}
	default:
		h.logger.Debug("ignoring event without notifications", "event_type", eventType)
		return nil
	}
}

// EventContextFromPayload reads the well-known payload keys. Unparseable
// values are left zero.
func EventContextFromPayload(payload map[string]string) EventContext {
	ec := EventContext{
		Name:         payload["name"],
		Email:        payload["email"],
		Phone:        payload["phone"],
		BusinessName: payload["business_name"],
		Reason:       payload["reason"],
	}
	if v := payload["created_at"]; v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			ec.CreatedAt = t
		}
	}
	if v := payload["was_approved"]; v != "" {
		ec.WasApproved, _ = strconv.ParseBool(v)
	} else if payload["previous_status"] == "approved" {
		ec.WasApproved = true
	}
	return ec
}
