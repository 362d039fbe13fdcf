package storage

import (
	"context"
	"time"
)

// Delivery log statuses.
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// NotificationLogEntry records a single notification delivery attempt.
type NotificationLogEntry struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Recipients []string  `json:"recipients"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	MessageID  string    `json:"message_id,omitempty"`
	ErrorCode  string    `json:"error_code,omitempty"`
	ErrorMsg   string    `json:"error_msg,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationStore defines the interface for persisting notification delivery logs.
type NotificationStore interface {
	// LogNotification records a notification delivery attempt.
	LogNotification(ctx context.Context, entry NotificationLogEntry) error
	// ListNotifications returns the most recent notification log entries, up to limit.
	ListNotifications(ctx context.Context, limit int) ([]NotificationLogEntry, error)
}
