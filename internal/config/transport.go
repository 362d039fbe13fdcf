package config

import (
	"context"
	"time"
)

// SecurityMode selects how the mail channel is secured.
type SecurityMode string

const (
	// SecuritySSL wraps the connection in TLS from the first byte (implicit TLS, usually port 465).
	SecuritySSL SecurityMode = "ssl"
	// SecurityTLS upgrades a plain connection with STARTTLS (usually port 587).
	SecurityTLS SecurityMode = "tls"
)

// Valid reports whether m is a recognised mode.
func (m SecurityMode) Valid() bool {
	return m == SecuritySSL || m == SecurityTLS
}

// TransportConfig is the stored SMTP connection and credential settings.
// Exactly one exists; it is created with defaults on first read.
type TransportConfig struct {
	Host                     string       `json:"host"`
	Port                     int          `json:"port"`
	SecurityMode             SecurityMode `json:"security_mode"`
	Username                 string       `json:"username"`
	Password                 string       `json:"password"`
	FromAddress              string       `json:"from_address"`
	FromName                 string       `json:"from_name"`
	ReplyAddress             string       `json:"reply_address,omitempty"`
	ReplyName                string       `json:"reply_name,omitempty"`
	AdminNotificationAddress string       `json:"admin_notification_address,omitempty"`
	UpdatedAt                time.Time    `json:"updated_at"`
}

// DefaultTransportConfig returns the placeholder configuration written when the
// store is read for the first time.
func DefaultTransportConfig(appName string) TransportConfig {
	return TransportConfig{
		Host:         "smtp.example.com",
		Port:         587,
		SecurityMode: SecurityTLS,
		FromAddress:  "noreply@example.com",
		FromName:     appName,
	}
}

// TransportStore persists the singleton TransportConfig.
type TransportStore interface {
	// Load returns the current configuration, creating the default row if none exists.
	Load(ctx context.Context) (TransportConfig, error)
	// Save replaces the stored configuration.
	Save(ctx context.Context, cfg TransportConfig) error
}
