package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/venuebook/internal/config"
	configmocks "github.com/shaharia-lab/venuebook/internal/config/mocks"
	"github.com/shaharia-lab/venuebook/internal/notification"
	"github.com/shaharia-lab/venuebook/internal/service"
	"github.com/shaharia-lab/venuebook/internal/storage"
)

// --- in-memory transport store ---

type memTransportStore struct {
	cfg   config.TransportConfig
	saves int
}

func (m *memTransportStore) Load(context.Context) (config.TransportConfig, error) { return m.cfg, nil }
func (m *memTransportStore) Save(_ context.Context, c config.TransportConfig) error {
	m.cfg = c
	m.saves++
	return nil
}

// --- in-memory notification store ---

type memNotificationStore struct {
	entries []storage.NotificationLogEntry
}

func (m *memNotificationStore) LogNotification(_ context.Context, e storage.NotificationLogEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memNotificationStore) ListNotifications(_ context.Context, limit int) ([]storage.NotificationLogEntry, error) {
	if limit > 0 && len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

// --- collaborators ---

type fakeTester struct {
	to     string
	result notification.Result
}

func (f *fakeTester) TestConnectivity(_ context.Context, to string) notification.Result {
	f.to = to
	return f.result
}

type fakeVerifier struct{ v notification.Verification }

func (f fakeVerifier) VerifyCurrent(context.Context) notification.Verification { return f.v }

type fakePublisher struct {
	accept bool
	events []string
}

func (f *fakePublisher) Publish(eventType string, _ map[string]string) bool {
	if f.accept {
		f.events = append(f.events, eventType)
	}
	return f.accept
}

type fixture struct {
	svc       service.NotificationService
	store     *memTransportStore
	log       *memNotificationStore
	tester    *fakeTester
	publisher *fakePublisher
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		store:     &memTransportStore{cfg: config.DefaultTransportConfig("Venuebook")},
		log:       &memNotificationStore{},
		tester:    &fakeTester{result: notification.Success("id@venue.test")},
		publisher: &fakePublisher{accept: true},
	}
	f.svc = service.NewNotificationService(service.NotificationDeps{
		Transports: f.store,
		Tester:     f.tester,
		Verifier:   fakeVerifier{v: notification.Verification{Status: notification.Verified}},
		Log:        f.log,
		Events:     f.publisher,
	})
	return f
}

func validTransport() *config.TransportConfig {
	return &config.TransportConfig{
		Host:                     "smtp.venue.test",
		Port:                     465,
		SecurityMode:             config.SecuritySSL,
		Username:                 "mailer",
		Password:                 "secret",
		FromAddress:              "bookings@venue.test",
		FromName:                 "Grand Hall",
		AdminNotificationAddress: "ops@venue.test",
	}
}

func TestGetTransport_Defaults(t *testing.T) {
	f := newFixture(t)
	got, err := f.svc.GetTransport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", got.Host)
	assert.Empty(t, got.Password)
}

func TestUpdateAndGet_MasksPassword(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.UpdateTransport(context.Background(), validTransport()))

	got, err := f.svc.GetTransport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "***", got.Password)
	assert.Equal(t, "secret", f.store.cfg.Password, "stored secret is untouched")
	assert.False(t, f.store.cfg.UpdatedAt.IsZero())
}

func TestUpdateTransport_MaskedPasswordPreserved(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.UpdateTransport(context.Background(), validTransport()))

	next := validTransport()
	next.Password = "***"
	next.Host = "mail.venue.test"
	require.NoError(t, f.svc.UpdateTransport(context.Background(), next))

	assert.Equal(t, "secret", f.store.cfg.Password)
	assert.Equal(t, "mail.venue.test", f.store.cfg.Host)
}

func TestUpdateTransport_Normalizes(t *testing.T) {
	f := newFixture(t)
	in := validTransport()
	in.Host = "  smtp.venue.test "
	in.SecurityMode = " TLS "
	require.NoError(t, f.svc.UpdateTransport(context.Background(), in))

	assert.Equal(t, "smtp.venue.test", f.store.cfg.Host)
	assert.Equal(t, config.SecurityTLS, f.store.cfg.SecurityMode)
}

func TestUpdateTransport_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(c *config.TransportConfig)
		field string
	}{
		{"missing host", func(c *config.TransportConfig) { c.Host = " " }, "host"},
		{"port zero", func(c *config.TransportConfig) { c.Port = 0 }, "port"},
		{"port too large", func(c *config.TransportConfig) { c.Port = 70000 }, "port"},
		{"bad mode", func(c *config.TransportConfig) { c.SecurityMode = "starttls" }, "security_mode"},
		{"missing from", func(c *config.TransportConfig) { c.FromAddress = "" }, "from_address"},
		{"bad from", func(c *config.TransportConfig) { c.FromAddress = "bookings" }, "from_address"},
		{"bad reply", func(c *config.TransportConfig) { c.ReplyAddress = "help at venue" }, "reply_address"},
		{"bad admin", func(c *config.TransportConfig) { c.AdminNotificationAddress = "@" }, "admin_notification_address"},
		{"from with display name", func(c *config.TransportConfig) { c.FromAddress = "Grand Hall <bookings@venue.test>" }, "from_address"},
		{"reply with display name", func(c *config.TransportConfig) { c.ReplyAddress = "Help <help@venue.test>" }, "reply_address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validTransport()
			tt.edit(in)

			err := f.svc.UpdateTransport(context.Background(), in)
			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Zero(t, f.store.saves)
		})
	}
}

func TestUpdateTransport_Nil(t *testing.T) {
	f := newFixture(t)
	var ve *service.ValidationError
	assert.ErrorAs(t, f.svc.UpdateTransport(context.Background(), nil), &ve)
}

func TestTestConnectivity(t *testing.T) {
	t.Run("passes the recipient through", func(t *testing.T) {
		f := newFixture(t)
		res := f.svc.TestConnectivity(context.Background(), " admin@venue.test ")
		assert.True(t, res.OK)
		assert.Equal(t, "admin@venue.test", f.tester.to)
	})

	t.Run("empty recipient is left to the fallback", func(t *testing.T) {
		f := newFixture(t)
		f.svc.TestConnectivity(context.Background(), "")
		assert.Empty(t, f.tester.to)
	})

	t.Run("invalid recipient", func(t *testing.T) {
		f := newFixture(t)
		f.tester.to = "untouched"
		res := f.svc.TestConnectivity(context.Background(), "not-an-email")
		assert.Equal(t, notification.CodeInvalidRecipient, res.Code)
		assert.Equal(t, "untouched", f.tester.to)
	})

	t.Run("display name is not a bare address", func(t *testing.T) {
		f := newFixture(t)
		f.tester.to = "untouched"
		res := f.svc.TestConnectivity(context.Background(), "Ops <ops@venue.test>")
		assert.Equal(t, notification.CodeInvalidRecipient, res.Code)
		assert.Equal(t, "untouched", f.tester.to)
	})
}

func TestVerifyTransport(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, notification.Verified, f.svc.VerifyTransport(context.Background()).Status)
}

func TestListLog(t *testing.T) {
	f := newFixture(t)
	f.log.entries = []storage.NotificationLogEntry{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	got, err := f.svc.ListLog(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPublishEvent(t *testing.T) {
	payload := map[string]string{"email": "ada@vendor.test"}

	t.Run("known event accepted", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.PublishEvent(notification.EventVendorRegistered, payload))
		assert.Equal(t, []string{notification.EventVendorRegistered}, f.publisher.events)
	})

	t.Run("unknown event rejected", func(t *testing.T) {
		f := newFixture(t)
		var ve *service.ValidationError
		require.ErrorAs(t, f.svc.PublishEvent("booking.created", payload), &ve)
		assert.Equal(t, "type", ve.Field)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		f := newFixture(t)
		var ve *service.ValidationError
		require.ErrorAs(t, f.svc.PublishEvent(notification.EventVendorApproved, map[string]string{}), &ve)
	})

	t.Run("full queue", func(t *testing.T) {
		f := newFixture(t)
		f.publisher.accept = false
		var ue *service.UnavailableError
		assert.ErrorAs(t, f.svc.PublishEvent(notification.EventVendorApproved, payload), &ue)
	})
}

func TestGetTransport_StoreError(t *testing.T) {
	store := new(configmocks.MockTransportStore)
	store.On("Load", mock.Anything).Return(config.TransportConfig{}, errors.New("database is locked"))

	svc := service.NewNotificationService(service.NotificationDeps{Transports: store})
	_, err := svc.GetTransport(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}
