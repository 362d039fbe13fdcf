package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wneessen/go-mail"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/metrics"
	"github.com/shaharia-lab/venuebook/internal/storage"
)

// Request is one message to deliver. TextBody is derived from HTMLBody
// when empty.
type Request struct {
	Kind     Kind
	To       []string
	Subject  string
	HTMLBody string
	TextBody string

	// Config, when set, is the transport snapshot to send with. The
	// source is not consulted, so content built from the same snapshot
	// describes the transport actually used.
	Config *config.TransportConfig
}

// TransportSource yields the current transport configuration.
// config.TransportStore implementations satisfy it.
type TransportSource interface {
	Load(ctx context.Context) (config.TransportConfig, error)
}

// DeliveryLog records outcomes. storage.NotificationStore satisfies it.
type DeliveryLog interface {
	LogNotification(ctx context.Context, entry storage.NotificationLogEntry) error
}

// ExecutorConfig wires an Executor. Log and Logger are optional; Dialer
// defaults to SMTPDialer.
type ExecutorConfig struct {
	Source TransportSource
	Dialer Dialer
	Policy config.TransportPolicy
	Log    DeliveryLog
	Logger *slog.Logger
}

// Executor turns a Request into a Result. It never returns an error and
// never panics; every outcome is a Result value.
type Executor struct {
	source   TransportSource
	resolver Resolver
	verifier *Verifier
	pool     *Pool
	policy   config.TransportPolicy
	log      DeliveryLog
	logger   *slog.Logger
}

// NewExecutor returns an Executor with its own channel pool. Call Close
// when the process shuts down.
func NewExecutor(cfg ExecutorConfig) *Executor {
	policy := cfg.Policy.WithDefaults()
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = SMTPDialer{ConnectTimeout: policy.ConnectTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		source:   cfg.Source,
		resolver: NewResolver(policy),
		verifier: NewVerifier(dialer, policy.VerifyTimeout),
		pool:     NewPool(dialer, policy),
		policy:   policy,
		log:      cfg.Log,
		logger:   logger,
	}
}

// Send delivers req using a single snapshot of the transport configuration.
func (e *Executor) Send(ctx context.Context, req Request) Result {
	res := e.safeDeliver(ctx, req)
	e.record(ctx, req, res)
	return res
}

func (e *Executor) snapshot(ctx context.Context) (config.TransportConfig, Transport, error) {
	cfg, err := e.source.Load(ctx)
	if err != nil {
		return config.TransportConfig{}, Transport{}, fmt.Errorf("loading transport configuration: %w", err)
	}
	return cfg, e.resolver.Resolve(cfg), nil
}

// VerifyCurrent runs the advisory handshake against the stored configuration.
func (e *Executor) VerifyCurrent(ctx context.Context) Verification {
	if e.source == nil {
		return Verification{Status: VerificationFailed, Reason: "no transport configuration source"}
	}
	cfg, t, err := e.snapshot(ctx)
	if err != nil {
		return Verification{Status: VerificationFailed, Reason: err.Error()}
	}
	if strings.TrimSpace(cfg.Host) == "" {
		return Verification{Status: VerificationFailed, Reason: "transport host is not configured"}
	}
	return e.verify(ctx, t, credentialsOf(cfg))
}

// Close ends pooled sessions.
func (e *Executor) Close() {
	e.pool.Close()
}

func (e *Executor) safeDeliver(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("mail delivery panicked", "kind", req.Kind, "panic", r)
			res = Failure(CodeSubmissionFailure, fmt.Sprintf("unexpected failure: %v", r))
		}
	}()
	return e.deliver(ctx, req)
}

func (e *Executor) deliver(ctx context.Context, req Request) Result {
	var cfg config.TransportConfig
	switch {
	case req.Config != nil:
		cfg = *req.Config
	case e.source == nil:
		return Failure(CodeConfigurationMissing, "no transport configuration source")
	default:
		loaded, err := e.source.Load(ctx)
		if err != nil {
			return Failure(CodeConfigurationMissing, fmt.Sprintf("loading transport configuration: %v", err))
		}
		cfg = loaded
	}
	if strings.TrimSpace(cfg.Host) == "" {
		return Failure(CodeConfigurationMissing, "transport host is not configured")
	}

	to := cleanRecipients(req.To)
	if len(to) == 0 {
		return Failure(CodeNoRecipients, "no recipients")
	}

	t := e.resolver.Resolve(cfg)
	if t.Overridden {
		metrics.TransportOverrides.Inc()
		e.logger.Debug("transport port overridden",
			"configured_port", cfg.Port, "port", t.Port, "security_mode", t.SecurityMode)
	}
	cred := credentialsOf(cfg)

	if e.policy.VerifyBeforeSend {
		// Advisory only: the send goes ahead whatever the outcome.
		e.verify(ctx, t, cred)
	}

	msg, messageID, err := e.buildMessage(cfg, to, req)
	if err != nil {
		return Failure(CodeCompositionFailure, err.Error())
	}

	if err := e.pool.Send(ctx, t, cred, msg); err != nil {
		return Failure(CodeSubmissionFailure, err.Error())
	}
	return Success(messageID)
}

func (e *Executor) verify(ctx context.Context, t Transport, cred Credentials) Verification {
	v := e.verifier.Verify(ctx, t, cred)
	metrics.VerificationsTotal.WithLabelValues(string(v.Status)).Inc()
	if v.Status == Verified {
		e.logger.Debug("mail transport verified", "addr", t.Addr(), "elapsed", v.Elapsed)
	} else {
		e.logger.Warn("mail transport verification did not succeed",
			"addr", t.Addr(), "status", v.Status, "reason", v.Reason, "elapsed", v.Elapsed)
	}
	return v
}

func (e *Executor) buildMessage(cfg config.TransportConfig, to []string, req Request) (*mail.Msg, string, error) {
	sender := e.policy.VerifiedSender
	if sender == "" {
		sender = cfg.FromAddress
	}

	m := mail.NewMsg()
	if cfg.FromName != "" {
		if err := m.FromFormat(cfg.FromName, sender); err != nil {
			return nil, "", fmt.Errorf("invalid sender %q: %w", sender, err)
		}
	} else if err := m.From(sender); err != nil {
		return nil, "", fmt.Errorf("invalid sender %q: %w", sender, err)
	}
	if err := m.EnvelopeFrom(sender); err != nil {
		return nil, "", fmt.Errorf("invalid envelope sender %q: %w", sender, err)
	}
	if err := m.To(to...); err != nil {
		return nil, "", fmt.Errorf("invalid recipients: %w", err)
	}

	if cfg.ReplyAddress != "" {
		var err error
		if cfg.ReplyName != "" {
			err = m.ReplyToFormat(cfg.ReplyName, cfg.ReplyAddress)
		} else {
			err = m.ReplyTo(cfg.ReplyAddress)
		}
		if err != nil {
			return nil, "", fmt.Errorf("invalid reply address %q: %w", cfg.ReplyAddress, err)
		}
	}

	m.Subject(req.Subject)
	messageID := newMessageID(sender)
	m.SetMessageIDWithValue(messageID)
	m.SetDate()

	text := req.TextBody
	if text == "" {
		text = PlainText(req.HTMLBody)
	}
	m.SetBodyString(mail.TypeTextPlain, text)
	if req.HTMLBody != "" {
		m.AddAlternativeString(mail.TypeTextHTML, req.HTMLBody)
	}
	return m, messageID, nil
}

func (e *Executor) record(ctx context.Context, req Request, res Result) {
	outcome := storage.DeliveryStatusSent
	if !res.OK {
		outcome = string(res.Code)
	}
	metrics.DeliveriesTotal.WithLabelValues(string(req.Kind), outcome).Inc()

	if res.OK {
		e.logger.Info("notification sent",
			"kind", req.Kind, "recipients", req.To, "subject", req.Subject, "message_id", res.MessageID)
	} else {
		e.logger.Error("notification failed",
			"kind", req.Kind, "recipients", req.To, "subject", req.Subject,
			"code", res.Code, "reason", res.Reason)
	}

	if e.log == nil {
		return
	}
	entry := storage.NotificationLogEntry{
		Kind:       string(req.Kind),
		Recipients: req.To,
		Subject:    req.Subject,
		Status:     storage.DeliveryStatusSent,
		MessageID:  res.MessageID,
	}
	if !res.OK {
		entry.Status = storage.DeliveryStatusFailed
		entry.ErrorCode = string(res.Code)
		entry.ErrorMsg = res.Reason
	}
	if err := e.log.LogNotification(context.WithoutCancel(ctx), entry); err != nil {
		e.logger.Warn("failed to record notification", "kind", req.Kind, "error", err)
	}
}

func credentialsOf(cfg config.TransportConfig) Credentials {
	return Credentials{Username: cfg.Username, Password: cfg.Password}
}

func cleanRecipients(to []string) []string {
	return lo.Compact(lo.Map(to, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

// newMessageID returns a globally unique id in the sender's domain.
func newMessageID(sender string) string {
	domain := "localhost"
	if at := strings.LastIndex(sender, "@"); at >= 0 && at < len(sender)-1 {
		domain = sender[at+1:]
	}
	return uuid.NewString() + "@" + domain
}
