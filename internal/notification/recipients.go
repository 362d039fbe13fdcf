package notification

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/storage"
)

// UserDirectory lists accounts by role. storage.SQLiteUserStore implements it.
type UserDirectory interface {
	ListActiveByRole(ctx context.Context, role string) ([]storage.User, error)
}

// RecipientAggregator builds the admin recipient set.
type RecipientAggregator struct {
	directory UserDirectory
	logger    *slog.Logger
}

// NewRecipientAggregator returns an aggregator over directory. A nil
// directory contributes no recipients.
func NewRecipientAggregator(directory UserDirectory, logger *slog.Logger) *RecipientAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipientAggregator{directory: directory, logger: logger}
}

// AdminRecipients returns the configured admin notification address followed
// by every active admin in the directory, trimmed and without duplicates.
// Addresses compare case-insensitively and the first spelling wins. A
// directory error is logged and the configured address still counts.
func (a *RecipientAggregator) AdminRecipients(ctx context.Context, cfg config.TransportConfig) []string {
	candidates := []string{cfg.AdminNotificationAddress}

	if a.directory != nil {
		admins, err := a.directory.ListActiveByRole(ctx, storage.RoleAdmin)
		if err != nil {
			a.logger.Warn("listing admin users failed", "error", err)
		} else {
			candidates = append(candidates, lo.Map(admins, func(u storage.User, _ int) string {
				return u.Email
			})...)
		}
	}

	trimmed := lo.Compact(lo.Map(candidates, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	return lo.UniqBy(trimmed, strings.ToLower)
}
