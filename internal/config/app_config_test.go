package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &AppConfig{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, c.SlogLevel())
		})
	}
}

func TestAppConfig_DirectoryPaths(t *testing.T) {
	c := &AppConfig{DataDir: "/data"}

	tests := []struct {
		name string
		fn   func() string
		want string
	}{
		{"LogDir", c.LogDir, "/data/logs"},
		{"DatabaseFile", c.DatabaseFile, "/data/venuebook.db"},
		{"PolicyFile", c.PolicyFile, "/data/mail-policy.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VENUEBOOK_DATA_DIR", "/tmp/venuebook-test")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8990, c.Port)
	assert.Equal(t, "/tmp/venuebook-test", c.DataDir)
	assert.Equal(t, "Venuebook", c.AppName)
	assert.True(t, c.MailOverridePort465)
	assert.True(t, c.MailVerifyBeforeSend)
	assert.Equal(t, 20*time.Second, c.MailVerifyTimeout)
	assert.Equal(t, []string{"*"}, c.CORSAllowedOrigins)
}

func TestLoad_MailOverrides(t *testing.T) {
	t.Setenv("VENUEBOOK_DATA_DIR", "/tmp/venuebook-test")
	t.Setenv("MAIL_OVERRIDE_PORT_465", "false")
	t.Setenv("MAIL_VERIFIED_SENDER", "verified@venue.test")
	t.Setenv("MAIL_MAX_MESSAGES_PER_CONN", "5")

	c, err := Load()
	require.NoError(t, err)

	p := c.TransportPolicy()
	assert.False(t, p.OverridePort465)
	assert.Equal(t, "verified@venue.test", p.VerifiedSender)
	assert.Equal(t, 5, p.MaxMessagesPerConnection)
	assert.Equal(t, DefaultPoolSize, p.PoolSize)
}

func TestAppConfig_DefaultTransport(t *testing.T) {
	c := &AppConfig{AppName: "Grand Hall"}
	d := c.DefaultTransport()

	assert.Equal(t, 587, d.Port)
	assert.Equal(t, SecurityTLS, d.SecurityMode)
	assert.Equal(t, "Grand Hall", d.FromName)
	assert.Empty(t, d.AdminNotificationAddress)
}
