package notification

import (
	"net"
	"strconv"

	"github.com/shaharia-lab/venuebook/internal/config"
)

const (
	implicitTLSPort = 465
	submissionPort  = 587
)

// Transport is the effective set of connection parameters used to open a
// mail channel.
type Transport struct {
	Host         string
	Port         int
	SecurityMode config.SecurityMode
	// Secure means TLS from the first byte (implicit SSL).
	Secure bool
	// RequireTLS means the plain connection must be upgraded with STARTTLS.
	RequireTLS bool
	// Overridden is set when the configured port was replaced by policy.
	Overridden bool
}

// Addr returns host:port.
func (t Transport) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Resolver derives Transport values from stored configuration.
type Resolver struct {
	overridePort465 bool
}

// NewResolver returns a Resolver applying policy.
func NewResolver(policy config.TransportPolicy) Resolver {
	return Resolver{overridePort465: policy.OverridePort465}
}

// Resolve never fails. Port 465 is moved to 587 with mandatory STARTTLS when
// the override is on, whatever the configured mode says. Every other port
// keeps its configured mode, and only ssl means implicit TLS.
func (r Resolver) Resolve(cfg config.TransportConfig) Transport {
	if r.overridePort465 && cfg.Port == implicitTLSPort {
		return Transport{
			Host:         cfg.Host,
			Port:         submissionPort,
			SecurityMode: config.SecurityTLS,
			RequireTLS:   true,
			Overridden:   true,
		}
	}

	mode := cfg.SecurityMode
	if mode == "" {
		mode = config.SecurityTLS
	}
	secure := mode == config.SecuritySSL
	return Transport{
		Host:         cfg.Host,
		Port:         cfg.Port,
		SecurityMode: mode,
		Secure:       secure,
		RequireTLS:   !secure,
	}
}
