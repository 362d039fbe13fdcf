package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const defaultLogLimit = 50

// SQLiteNotificationStore implements NotificationStore backed by SQLite.
type SQLiteNotificationStore struct {
	db *sql.DB
}

// NewSQLiteNotificationStore returns a new SQLiteNotificationStore.
func NewSQLiteNotificationStore(db *sql.DB) *SQLiteNotificationStore {
	return &SQLiteNotificationStore{db: db}
}

// LogNotification inserts a notification delivery record into the database.
// Entries without an ID get a new UUID.
func (s *SQLiteNotificationStore) LogNotification(ctx context.Context, entry NotificationLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	recipients := entry.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	rcpt, err := json.Marshal(recipients)
	if err != nil {
		return fmt.Errorf("encoding recipients: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notification_log
			(id, kind, recipients, subject, status, message_id, error_code, error_msg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Kind, string(rcpt), entry.Subject, entry.Status,
		entry.MessageID, entry.ErrorCode, entry.ErrorMsg, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting notification log: %w", err)
	}
	return nil
}

// ListNotifications returns the most recent log entries ordered by created_at descending.
func (s *SQLiteNotificationStore) ListNotifications(ctx context.Context, limit int) (entries []NotificationLogEntry, err error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, recipients, subject, status, message_id, error_code, error_msg, created_at
		FROM notification_log
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying notification log: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var e NotificationLogEntry
		var rcpt string
		if err := rows.Scan(&e.ID, &e.Kind, &rcpt, &e.Subject, &e.Status,
			&e.MessageID, &e.ErrorCode, &e.ErrorMsg, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification log row: %w", err)
		}
		if err := json.Unmarshal([]byte(rcpt), &e.Recipients); err != nil {
			return nil, fmt.Errorf("decoding recipients for %q: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification log rows: %w", err)
	}
	return entries, nil
}
