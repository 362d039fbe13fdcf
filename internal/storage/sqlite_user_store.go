package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLiteUserStore implements UserStore backed by SQLite.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore returns a new SQLiteUserStore.
func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

// ListActiveByRole returns non-deleted users with role, oldest first.
func (s *SQLiteUserStore) ListActiveByRole(ctx context.Context, role string) (users []User, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, role, deleted, created_at
		FROM users
		WHERE role = ? AND deleted = 0
		ORDER BY created_at, id`, role)
	if err != nil {
		return nil, fmt.Errorf("querying users by role: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var u User
		var deleted int
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &deleted, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		u.Deleted = deleted != 0
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}
	return users, nil
}

// Save inserts or replaces u. An empty ID is assigned a new UUID and a zero
// CreatedAt is set to now.
func (s *SQLiteUserStore) Save(ctx context.Context, u User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	deleted := 0
	if u.Deleted {
		deleted = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role, deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			role = excluded.role,
			deleted = excluded.deleted`,
		u.ID, u.Name, u.Email, u.Role, deleted, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving user %q: %w", u.ID, err)
	}
	return nil
}
