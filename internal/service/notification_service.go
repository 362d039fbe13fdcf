package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/notification"
	"github.com/shaharia-lab/venuebook/internal/storage"
)

const maskedPassword = "***"

// NotificationService manages the mail transport settings, the delivery log
// and the event entry point used by business flows.
type NotificationService interface {
	// GetTransport returns the current transport configuration with the password masked.
	GetTransport(ctx context.Context) (*config.TransportConfig, error)
	// UpdateTransport validates and persists a new transport configuration.
	// If the password field is the mask sentinel, the existing password is preserved.
	UpdateTransport(ctx context.Context, cfg *config.TransportConfig) error
	// TestConnectivity sends a test message to to, or to the admin notification address.
	TestConnectivity(ctx context.Context, to string) notification.Result
	// VerifyTransport runs the advisory handshake against the stored configuration.
	VerifyTransport(ctx context.Context) notification.Verification
	// ListLog returns the most recent notification log entries.
	ListLog(ctx context.Context, limit int) ([]storage.NotificationLogEntry, error)
	// PublishEvent enqueues a business event for asynchronous notification.
	PublishEvent(eventType string, payload map[string]string) error
}

// ConnectivityTester sends a transport test message. notification.Notifier implements it.
type ConnectivityTester interface {
	TestConnectivity(ctx context.Context, to string) notification.Result
}

// TransportVerifier probes the stored transport. notification.Executor implements it.
type TransportVerifier interface {
	VerifyCurrent(ctx context.Context) notification.Verification
}

// NotificationDeps wires a NotificationService.
type NotificationDeps struct {
	Transports config.TransportStore
	Tester     ConnectivityTester
	Verifier   TransportVerifier
	Log        storage.NotificationStore
	Events     EventPublisher
}

type notificationServiceImpl struct {
	transports config.TransportStore
	tester     ConnectivityTester
	verifier   TransportVerifier
	log        storage.NotificationStore
	events     EventPublisher
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(deps NotificationDeps) NotificationService {
	return &notificationServiceImpl{
		transports: deps.Transports,
		tester:     deps.Tester,
		verifier:   deps.Verifier,
		log:        deps.Log,
		events:     deps.Events,
	}
}

// GetTransport returns the stored configuration with the password masked.
func (s *notificationServiceImpl) GetTransport(ctx context.Context) (*config.TransportConfig, error) {
	cfg, err := s.transports.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transport configuration: %w", err)
	}
	if cfg.Password != "" {
		cfg.Password = maskedPassword
	}
	return &cfg, nil
}

// UpdateTransport saves incoming after validation. If the incoming password
// is the mask sentinel, the previously stored password is preserved.
func (s *notificationServiceImpl) UpdateTransport(ctx context.Context, incoming *config.TransportConfig) error {
	if incoming == nil {
		return &ValidationError{Message: "transport configuration is required"}
	}
	cfg := normalizeTransport(*incoming)
	if err := validateTransport(cfg); err != nil {
		return err
	}

	if cfg.Password == maskedPassword {
		existing, err := s.transports.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading existing transport configuration: %w", err)
		}
		cfg.Password = existing.Password
	}

	cfg.UpdatedAt = time.Now().UTC()
	if err := s.transports.Save(ctx, cfg); err != nil {
		return fmt.Errorf("saving transport configuration: %w", err)
	}
	return nil
}

// TestConnectivity sends a test message using the stored configuration.
func (s *notificationServiceImpl) TestConnectivity(ctx context.Context, to string) notification.Result {
	if to = strings.TrimSpace(to); to != "" && !isBareAddress(to) {
		return notification.Failure(notification.CodeInvalidRecipient, fmt.Sprintf("invalid recipient %q", to))
	}
	return s.tester.TestConnectivity(ctx, to)
}

// VerifyTransport runs the advisory handshake.
func (s *notificationServiceImpl) VerifyTransport(ctx context.Context) notification.Verification {
	return s.verifier.VerifyCurrent(ctx)
}

// ListLog returns the most recent notification log entries.
func (s *notificationServiceImpl) ListLog(ctx context.Context, limit int) ([]storage.NotificationLogEntry, error) {
	return s.log.ListNotifications(ctx, limit)
}

// PublishEvent accepts only events the notification handler knows about.
func (s *notificationServiceImpl) PublishEvent(eventType string, payload map[string]string) error {
	if !notification.KnownEvent(eventType) {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unsupported event type %q", eventType)}
	}
	if strings.TrimSpace(payload["email"]) == "" {
		return &ValidationError{Field: "payload.email", Message: "email is required"}
	}
	if !s.events.Publish(eventType, payload) {
		return &UnavailableError{Resource: "event queue", Reason: "event was not accepted"}
	}
	return nil
}

func normalizeTransport(cfg config.TransportConfig) config.TransportConfig {
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.FromAddress = strings.TrimSpace(cfg.FromAddress)
	cfg.FromName = strings.TrimSpace(cfg.FromName)
	cfg.ReplyAddress = strings.TrimSpace(cfg.ReplyAddress)
	cfg.ReplyName = strings.TrimSpace(cfg.ReplyName)
	cfg.AdminNotificationAddress = strings.TrimSpace(cfg.AdminNotificationAddress)
	cfg.SecurityMode = config.SecurityMode(strings.ToLower(strings.TrimSpace(string(cfg.SecurityMode))))
	if cfg.SecurityMode == "" {
		cfg.SecurityMode = config.SecurityTLS
	}
	return cfg
}

func validateTransport(cfg config.TransportConfig) error {
	if cfg.Host == "" {
		return &ValidationError{Field: "host", Message: "host is required"}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{Field: "port", Message: "port must be between 1 and 65535"}
	}
	if !cfg.SecurityMode.Valid() {
		return &ValidationError{Field: "security_mode", Message: `security mode must be "ssl" or "tls"`}
	}
	if cfg.FromAddress == "" {
		return &ValidationError{Field: "from_address", Message: "from address is required"}
	}

	addresses := []struct {
		field, value string
	}{
		{"from_address", cfg.FromAddress},
		{"reply_address", cfg.ReplyAddress},
		{"admin_notification_address", cfg.AdminNotificationAddress},
	}
	for _, a := range addresses {
		if a.value == "" {
			continue
		}
		if !isBareAddress(a.value) {
			return &ValidationError{Field: a.field, Message: fmt.Sprintf("invalid email address %q", a.value)}
		}
	}
	return nil
}

// isBareAddress accepts "user@host" only. Display names belong in the
// separate name fields.
func isBareAddress(value string) bool {
	parsed, err := mail.ParseAddress(value)
	return err == nil && parsed.Address == value
}
