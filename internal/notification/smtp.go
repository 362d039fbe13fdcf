package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Credentials authenticate against the mail endpoint.
type Credentials struct {
	Username string
	Password string
}

// Channel is an open, authenticated connection to the mail endpoint.
type Channel interface {
	// Send submits msg over the open connection.
	Send(ctx context.Context, msg *mail.Msg) error
	// Close ends the session.
	Close() error
}

// Dialer opens channels. The SMTP implementation is SMTPDialer; tests
// substitute their own.
type Dialer interface {
	Dial(ctx context.Context, t Transport, cred Credentials) (Channel, error)
}

// SMTPDialer opens SMTP sessions with go-mail: implicit TLS when the
// transport is secure, mandatory STARTTLS otherwise, AUTH LOGIN when a
// username is configured.
type SMTPDialer struct {
	ConnectTimeout time.Duration
}

// Dial connects, negotiates TLS and authenticates.
func (d SMTPDialer) Dial(ctx context.Context, t Transport, cred Credentials) (Channel, error) {
	opts := []mail.Option{mail.WithPort(t.Port)}
	if d.ConnectTimeout > 0 {
		opts = append(opts, mail.WithTimeout(d.ConnectTimeout))
	}

	switch {
	case t.Secure:
		opts = append(opts, mail.WithSSL())
	case t.RequireTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if cred.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cred.Username),
			mail.WithPassword(cred.Password),
		)
	}

	client, err := mail.NewClient(t.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating mail client: %w", err)
	}
	if err := client.DialWithContext(ctx); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", t.Addr(), err)
	}
	return &smtpChannel{client: client}, nil
}

type smtpChannel struct {
	client *mail.Client
}

func (c *smtpChannel) Send(ctx context.Context, msg *mail.Msg) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.client.Send(msg)
}

func (c *smtpChannel) Close() error {
	return c.client.Close()
}
