package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/eventbus"
	"github.com/shaharia-lab/venuebook/internal/notification"
	"github.com/shaharia-lab/venuebook/internal/service"
	"github.com/shaharia-lab/venuebook/internal/storage"
)

// app is the wired notification stack shared by the serve and mail commands.
type app struct {
	policy     config.TransportPolicy
	db         *sql.DB
	transports *storage.SQLiteTransportStore
	users      *storage.SQLiteUserStore
	executor   *notification.Executor
	notifier   *notification.Notifier
	bus        eventbus.EventBus
	service    service.NotificationService
}

// newApp opens the database and wires the stores, the delivery executor,
// the event bus and the notification service. Call close when done.
func newApp(ctx context.Context, cfg *config.AppConfig, sysLogger, mailLogger *slog.Logger) (*app, error) {
	policy, err := config.LoadTransportPolicy(cfg.PolicyFile(), cfg.TransportPolicy())
	if err != nil {
		return nil, err
	}

	db, err := storage.NewSQLiteDB(ctx, cfg.DatabaseFile())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := &app{
		policy:     policy,
		db:         db,
		transports: storage.NewSQLiteTransportStore(db, cfg.DefaultTransport()),
		users:      storage.NewSQLiteUserStore(db),
	}
	logStore := storage.NewSQLiteNotificationStore(db)

	a.executor = notification.NewExecutor(notification.ExecutorConfig{
		Source: a.transports,
		Policy: policy,
		Log:    logStore,
		Logger: mailLogger,
	})
	a.notifier = notification.NewNotifier(notification.NotifierConfig{
		Sender:    a.executor,
		Source:    a.transports,
		Policy:    policy,
		Composer:  notification.NewComposer(notification.Brand{AppName: cfg.AppName, SiteURL: cfg.SiteURL}),
		Directory: a.users,
		Logger:    mailLogger,
	})

	handler := notification.NewNotificationHandler(a.notifier, mailLogger)
	a.bus = eventbus.New(0, sysLogger)
	a.bus.Subscribe(func(e eventbus.Event) {
		handler.Handle(e.Type, e.Payload)
	})

	a.service = service.NewNotificationService(service.NotificationDeps{
		Transports: a.transports,
		Tester:     a.notifier,
		Verifier:   a.executor,
		Log:        logStore,
		Events:     a.bus,
	})

	sysLogger.Info("mail transport policy loaded",
		"override_port_465", policy.OverridePort465,
		"verify_before_send", policy.VerifyBeforeSend,
		"pool_size", policy.PoolSize,
		"max_messages_per_connection", policy.MaxMessagesPerConnection,
		"verified_sender", policy.VerifiedSender != "",
	)
	return a, nil
}

// close drains pending events, then releases mail sessions and the database.
func (a *app) close() error {
	a.bus.Close()
	a.executor.Close()
	if err := a.db.Close(); err != nil {
		return errors.Join(errors.New("closing database"), err)
	}
	return nil
}
