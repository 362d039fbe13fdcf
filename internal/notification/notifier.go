package notification

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shaharia-lab/venuebook/internal/config"
)

// Sender delivers a composed Request. Executor implements it.
type Sender interface {
	Send(ctx context.Context, req Request) Result
}

// NotifierConfig wires a Notifier.
type NotifierConfig struct {
	Sender    Sender
	Source    TransportSource
	Policy    config.TransportPolicy
	Composer  *Composer
	Directory UserDirectory
	Logger    *slog.Logger
}

// Notifier exposes one operation per business event. Each composes the
// message for its event, picks recipients and hands the result to the
// Sender.
type Notifier struct {
	sender     Sender
	source     TransportSource
	resolver   Resolver
	composer   *Composer
	recipients *RecipientAggregator
	logger     *slog.Logger
}

// NewNotifier returns a Notifier.
func NewNotifier(cfg NotifierConfig) *Notifier {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	composer := cfg.Composer
	if composer == nil {
		composer = NewComposer(Brand{})
	}
	return &Notifier{
		sender:     cfg.Sender,
		source:     cfg.Source,
		resolver:   NewResolver(cfg.Policy),
		composer:   composer,
		recipients: NewRecipientAggregator(cfg.Directory, logger),
		logger:     logger,
	}
}

// WelcomeCustomer greets a newly registered customer.
func (n *Notifier) WelcomeCustomer(ctx context.Context, ec EventContext) Result {
	return n.deliver(ctx, KindCustomerWelcome, []string{ec.Email}, ec, nil)
}

// WelcomeVendor tells a new vendor their registration is pending review.
func (n *Notifier) WelcomeVendor(ctx context.Context, ec EventContext) Result {
	return n.deliver(ctx, KindVendorWelcome, []string{ec.Email}, ec, nil)
}

// NotifyAdminsVendorRegistered sends the registration notice to every admin.
// With no admin recipients it fails without touching the network.
func (n *Notifier) NotifyAdminsVendorRegistered(ctx context.Context, ec EventContext) Result {
	var cfg config.TransportConfig
	if n.source != nil {
		loaded, err := n.source.Load(ctx)
		if err != nil {
			n.logger.Warn("loading transport configuration for admin recipients", "error", err)
		} else {
			cfg = loaded
		}
	}

	to := n.recipients.AdminRecipients(ctx, cfg)
	if len(to) == 0 {
		n.logger.Warn("vendor registration notice not sent", "vendor", ec.Email, "reason", ReasonNoAdminEmails)
		return Failure(CodeNoRecipients, ReasonNoAdminEmails)
	}
	return n.deliver(ctx, KindVendorRegisteredToAdmin, to, ec, nil)
}

// VendorApproved tells a vendor their account was approved.
func (n *Notifier) VendorApproved(ctx context.Context, ec EventContext) Result {
	return n.deliver(ctx, KindVendorApproved, []string{ec.Email}, ec, nil)
}

// VendorRejected tells a vendor their access was revoked or their
// registration declined, depending on ec.WasApproved.
func (n *Notifier) VendorRejected(ctx context.Context, ec EventContext) Result {
	return n.deliver(ctx, KindVendorRejected, []string{ec.Email}, ec, nil)
}

// TestConnectivity sends a test message to to, or to the configured admin
// notification address when to is empty.
func (n *Notifier) TestConnectivity(ctx context.Context, to string) Result {
	if n.source == nil {
		return Failure(CodeConfigurationMissing, "no transport configuration source")
	}
	cfg, err := n.source.Load(ctx)
	if err != nil {
		return Failure(CodeConfigurationMissing, "loading transport configuration: "+err.Error())
	}

	to = strings.TrimSpace(to)
	if to == "" {
		to = strings.TrimSpace(cfg.AdminNotificationAddress)
	}
	if to == "" {
		return Failure(CodeNoRecipients, "no test recipient and no admin notification address configured")
	}

	t := n.resolver.Resolve(cfg)
	ec := EventContext{
		Email:        to,
		CreatedAt:    time.Now(),
		Host:         t.Host,
		Port:         t.Port,
		SecurityMode: string(t.SecurityMode),
	}
	// The snapshot travels with the request so the transport described in
	// the message is the one used to send it.
	return n.deliver(ctx, KindConnectivityTest, []string{to}, ec, &cfg)
}

func (n *Notifier) deliver(ctx context.Context, kind Kind, to []string, ec EventContext, snapshot *config.TransportConfig) Result {
	content, err := n.composer.Compose(kind, ec)
	if err != nil {
		n.logger.Error("composing notification failed", "kind", kind, "error", err)
		return Failure(CodeCompositionFailure, err.Error())
	}
	return n.sender.Send(ctx, Request{
		Kind:     kind,
		To:       to,
		Subject:  content.Subject,
		HTMLBody: content.HTMLBody,
		Config:   snapshot,
	})
}
