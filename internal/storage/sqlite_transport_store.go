package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shaharia-lab/venuebook/internal/config"
)

// SQLiteTransportStore implements config.TransportStore backed by a SQLite database.
type SQLiteTransportStore struct {
	db       *sql.DB
	defaults config.TransportConfig
}

// NewSQLiteTransportStore returns a new SQLiteTransportStore. defaults is
// written as the singleton row the first time Load finds none.
func NewSQLiteTransportStore(db *sql.DB, defaults config.TransportConfig) *SQLiteTransportStore {
	return &SQLiteTransportStore{db: db, defaults: defaults}
}

// Load returns the persisted transport configuration. If no row exists yet, it
// inserts the default row and returns whatever row is then stored.
func (s *SQLiteTransportStore) Load(ctx context.Context) (config.TransportConfig, error) {
	c, err := s.selectRow(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		if err := s.insertDefaults(ctx); err != nil {
			return s.defaults, fmt.Errorf("initializing default transport: %w", err)
		}
		c, err = s.selectRow(ctx)
	}
	if err != nil {
		return c, fmt.Errorf("loading transport: %w", err)
	}
	return c, nil
}

func (s *SQLiteTransportStore) selectRow(ctx context.Context) (config.TransportConfig, error) {
	var c config.TransportConfig
	var mode string

	err := s.db.QueryRowContext(ctx, `
		SELECT host, port, security_mode, username, password,
		       from_address, from_name, reply_address, reply_name,
		       admin_notification_address, updated_at
		FROM mail_transport WHERE id = 1`).Scan(
		&c.Host, &c.Port, &mode, &c.Username, &c.Password,
		&c.FromAddress, &c.FromName, &c.ReplyAddress, &c.ReplyName,
		&c.AdminNotificationAddress, &c.UpdatedAt,
	)
	c.SecurityMode = config.SecurityMode(mode)
	return c, err
}

// insertDefaults writes the default row unless one already exists, so a
// concurrent Save always wins over the defaults.
func (s *SQLiteTransportStore) insertDefaults(ctx context.Context) error {
	d := s.defaults
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mail_transport
			(id, host, port, security_mode, username, password,
			 from_address, from_name, reply_address, reply_name,
			 admin_notification_address, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		d.Host, d.Port, string(d.SecurityMode), d.Username, d.Password,
		d.FromAddress, d.FromName, d.ReplyAddress, d.ReplyName,
		d.AdminNotificationAddress, time.Now().UTC(),
	)
	return err
}

// Save persists the transport configuration (single row, id=1).
func (s *SQLiteTransportStore) Save(ctx context.Context, c config.TransportConfig) error {
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mail_transport
			(id, host, port, security_mode, username, password,
			 from_address, from_name, reply_address, reply_name,
			 admin_notification_address, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			host = excluded.host,
			port = excluded.port,
			security_mode = excluded.security_mode,
			username = excluded.username,
			password = excluded.password,
			from_address = excluded.from_address,
			from_name = excluded.from_name,
			reply_address = excluded.reply_address,
			reply_name = excluded.reply_name,
			admin_notification_address = excluded.admin_notification_address,
			updated_at = excluded.updated_at`,
		c.Host, c.Port, string(c.SecurityMode), c.Username, c.Password,
		c.FromAddress, c.FromName, c.ReplyAddress, c.ReplyName,
		c.AdminNotificationAddress, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving transport: %w", err)
	}
	return nil
}
