package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8990.
	Port int `envconfig:"PORT" default:"8990"`

	// DataDir is the root data directory. Defaults to ~/.venuebook.
	DataDir string `envconfig:"VENUEBOOK_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// AppName is the brand shown in outgoing mail and used as the default sender name.
	AppName string `envconfig:"APP_NAME" default:"Venuebook"`

	// SiteURL is linked from outgoing mail.
	SiteURL string `envconfig:"SITE_URL" default:"http://localhost:8990"`

	// CORSAllowedOrigins lists origins allowed to call the admin API.
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// MailVerifiedSender is the pre-verified envelope sender. When set it is
	// preferred over the stored from address.
	MailVerifiedSender string `envconfig:"MAIL_VERIFIED_SENDER"`

	// MailOverridePort465 forces port 465 configurations onto 587 with STARTTLS.
	MailOverridePort465 bool `envconfig:"MAIL_OVERRIDE_PORT_465" default:"true"`

	// MailVerifyBeforeSend runs the advisory handshake before every send.
	MailVerifyBeforeSend bool `envconfig:"MAIL_VERIFY_BEFORE_SEND" default:"true"`

	MailPoolSize           int           `envconfig:"MAIL_POOL_SIZE" default:"1"`
	MailMaxMessagesPerConn int           `envconfig:"MAIL_MAX_MESSAGES_PER_CONN" default:"3"`
	MailConnectTimeout     time.Duration `envconfig:"MAIL_CONNECT_TIMEOUT" default:"15s"`
	MailVerifyTimeout      time.Duration `envconfig:"MAIL_VERIFY_TIMEOUT" default:"20s"`

	// MailProbeInterval schedules a periodic advisory handshake. Zero disables it.
	MailProbeInterval time.Duration `envconfig:"MAIL_PROBE_INTERVAL" default:"0s"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.venuebook if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".venuebook")
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory (~/.venuebook/logs).
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DatabaseFile returns the path to the SQLite database.
func (c *AppConfig) DatabaseFile() string {
	return filepath.Join(c.DataDir, "venuebook.db")
}

// PolicyFile returns the path to the optional mail transport policy override file.
func (c *AppConfig) PolicyFile() string {
	return filepath.Join(c.DataDir, "mail-policy.yaml")
}

// TransportPolicy builds the mail transport policy from the environment.
// Zero or negative values fall back to the built-in defaults.
func (c *AppConfig) TransportPolicy() TransportPolicy {
	return TransportPolicy{
		OverridePort465:          c.MailOverridePort465,
		VerifyBeforeSend:         c.MailVerifyBeforeSend,
		PoolSize:                 c.MailPoolSize,
		MaxMessagesPerConnection: c.MailMaxMessagesPerConn,
		ConnectTimeout:           c.MailConnectTimeout,
		VerifyTimeout:            c.MailVerifyTimeout,
		ProbeInterval:            c.MailProbeInterval,
		VerifiedSender:           c.MailVerifiedSender,
	}.WithDefaults()
}

// DefaultTransport returns the transport configuration created on first access
// of the configuration store.
func (c *AppConfig) DefaultTransport() TransportConfig {
	return DefaultTransportConfig(c.AppName)
}
