package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/notification"
	"github.com/shaharia-lab/venuebook/internal/storage"
	"github.com/shaharia-lab/venuebook/internal/storage/mocks"
)

func TestRecipientAggregator_AdminRecipients(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		admins     []storage.User
		listErr    error
		want       []string
	}{
		{
			name:       "configured address first then directory admins",
			configured: "ops@venue.test",
			admins:     []storage.User{{Email: "ann@venue.test"}, {Email: "bob@venue.test"}},
			want:       []string{"ops@venue.test", "ann@venue.test", "bob@venue.test"},
		},
		{
			name:       "duplicates removed case-insensitively keeping first spelling",
			configured: "Ops@Venue.test",
			admins:     []storage.User{{Email: "ops@venue.test"}, {Email: " ann@venue.test "}, {Email: "ANN@venue.test"}},
			want:       []string{"Ops@Venue.test", "ann@venue.test"},
		},
		{
			name:   "blank addresses dropped",
			admins: []storage.User{{Email: ""}, {Email: "   "}, {Email: "ann@venue.test"}},
			want:   []string{"ann@venue.test"},
		},
		{
			name: "nothing found",
			want: []string{},
		},
		{
			name:       "directory error keeps configured address",
			configured: "ops@venue.test",
			listErr:    errors.New("database is locked"),
			want:       []string{"ops@venue.test"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := new(mocks.MockUserStore)
			if tt.listErr != nil {
				dir.On("ListActiveByRole", mock.Anything, storage.RoleAdmin).Return(nil, tt.listErr)
			} else {
				dir.On("ListActiveByRole", mock.Anything, storage.RoleAdmin).Return(tt.admins, nil)
			}

			agg := notification.NewRecipientAggregator(dir, nil)
			got := agg.AdminRecipients(context.Background(), config.TransportConfig{AdminNotificationAddress: tt.configured})

			assert.Equal(t, tt.want, got)
			dir.AssertExpectations(t)
		})
	}
}

func TestRecipientAggregator_NilDirectory(t *testing.T) {
	agg := notification.NewRecipientAggregator(nil, nil)
	got := agg.AdminRecipients(context.Background(), config.TransportConfig{AdminNotificationAddress: "ops@venue.test"})
	assert.Equal(t, []string{"ops@venue.test"}, got)
}
