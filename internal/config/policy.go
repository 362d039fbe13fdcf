package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for TransportPolicy. The mail path is low volume, so the pool
// favours a single reused connection over throughput.
const (
	DefaultPoolSize                 = 1
	DefaultMaxMessagesPerConnection = 3
	DefaultConnectTimeout           = 15 * time.Second
	DefaultVerifyTimeout            = 20 * time.Second
)

// TransportPolicy enumerates the options recognised when building a mail channel.
type TransportPolicy struct {
	// OverridePort465 moves port 465 configurations to 587 with mandatory STARTTLS.
	OverridePort465 bool `yaml:"override_port_465"`
	// VerifyBeforeSend runs the advisory handshake before each send.
	VerifyBeforeSend bool `yaml:"verify_before_send"`

	PoolSize                 int           `yaml:"pool_size"`
	MaxMessagesPerConnection int           `yaml:"max_messages_per_connection"`
	ConnectTimeout           time.Duration `yaml:"connect_timeout"`
	VerifyTimeout            time.Duration `yaml:"verify_timeout"`

	// ProbeInterval schedules a background handshake. Zero disables it.
	ProbeInterval time.Duration `yaml:"probe_interval"`

	// VerifiedSender, when set, replaces the stored from address as sender.
	VerifiedSender string `yaml:"verified_sender"`
}

// DefaultTransportPolicy returns the policy used when nothing is configured.
func DefaultTransportPolicy() TransportPolicy {
	return TransportPolicy{
		OverridePort465:  true,
		VerifyBeforeSend: true,
	}.WithDefaults()
}

// WithDefaults fills zero or negative numeric fields with the package defaults.
func (p TransportPolicy) WithDefaults() TransportPolicy {
	if p.PoolSize <= 0 {
		p.PoolSize = DefaultPoolSize
	}
	if p.MaxMessagesPerConnection <= 0 {
		p.MaxMessagesPerConnection = DefaultMaxMessagesPerConnection
	}
	if p.ConnectTimeout <= 0 {
		p.ConnectTimeout = DefaultConnectTimeout
	}
	if p.VerifyTimeout <= 0 {
		p.VerifyTimeout = DefaultVerifyTimeout
	}
	if p.ProbeInterval < 0 {
		p.ProbeInterval = 0
	}
	return p
}

// LoadTransportPolicy overlays the YAML file at path onto base. Keys missing
// from the file keep their base value. A missing file returns base unchanged.
func LoadTransportPolicy(path string, base TransportPolicy) (TransportPolicy, error) {
	//nolint:gosec // path is constructed from the data directory
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("reading transport policy %q: %w", path, err)
	}

	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return base, fmt.Errorf("parsing transport policy %q: %w", path, err)
	}
	return p.WithDefaults(), nil
}
