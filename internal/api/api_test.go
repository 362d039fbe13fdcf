package api_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/venuebook/internal/api"
	"github.com/shaharia-lab/venuebook/internal/build"
	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/notification"
	"github.com/shaharia-lab/venuebook/internal/service"
	svcmocks "github.com/shaharia-lab/venuebook/internal/service/mocks"
	"github.com/shaharia-lab/venuebook/internal/storage"
)

// testHarness bundles the mocks and router used by every test.
type testHarness struct {
	notificationSvc *svcmocks.MockNotificationService
	router          chi.Router
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	notificationSvc := new(svcmocks.MockNotificationService)
	srv := api.New(notificationSvc, slog.Default())

	r := chi.NewRouter()
	srv.Mount(r)

	t.Cleanup(func() { notificationSvc.AssertExpectations(t) })
	return &testHarness{notificationSvc: notificationSvc, router: r}
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func maskedTransport() *config.TransportConfig {
	return &config.TransportConfig{
		Host:         "smtp.venue.test",
		Port:         587,
		SecurityMode: config.SecurityTLS,
		Username:     "mailer",
		Password:     "***",
		FromAddress:  "bookings@venue.test",
	}
}

// ---------- Transport ----------

func TestGetTransport(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *config.TransportConfig
		err        error
		wantStatus int
	}{
		{"success", maskedTransport(), nil, http.StatusOK},
		{"service error", nil, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.notificationSvc.On("GetTransport", mock.Anything).Return(tc.cfg, tc.err)

			w := h.do(httptest.NewRequest(http.MethodGet, "/notifications/transport", nil))
			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusOK {
				var got config.TransportConfig
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, "***", got.Password)
				assert.Equal(t, "smtp.venue.test", got.Host)
			}
		})
	}
}

func TestUpdateTransport(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"host":"smtp.venue.test","port":587,"security_mode":"tls","password":"***","from_address":"bookings@venue.test"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid JSON",
			body:       `{invalid`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation error",
			body:       `{"host":"","port":587}`,
			err:        &service.ValidationError{Field: "host", Message: "host is required"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store error",
			body:       `{"host":"smtp.venue.test","port":587}`,
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			if tc.body != `{invalid` {
				h.notificationSvc.On("UpdateTransport", mock.Anything, mock.AnythingOfType("*config.TransportConfig")).Return(tc.err)
			}
			if tc.wantStatus == http.StatusOK {
				h.notificationSvc.On("GetTransport", mock.Anything).Return(maskedTransport(), nil)
			}

			req := httptest.NewRequest(http.MethodPut, "/notifications/transport", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := h.do(req)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestUpdateTransport_PassesDecodedBody(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("UpdateTransport", mock.Anything, mock.MatchedBy(func(c *config.TransportConfig) bool {
		return c.Host == "smtp.venue.test" && c.Port == 465 && c.SecurityMode == config.SecuritySSL && c.Password == "***"
	})).Return(nil)
	h.notificationSvc.On("GetTransport", mock.Anything).Return(maskedTransport(), nil)

	body := `{"host":"smtp.venue.test","port":465,"security_mode":"ssl","password":"***","from_address":"a@venue.test"}`
	w := h.do(httptest.NewRequest(http.MethodPut, "/notifications/transport", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyTransport(t *testing.T) {
	h := newHarness(t)
	h.notificationSvc.On("VerifyTransport", mock.Anything).
		Return(notification.Verification{Status: notification.TimedOut, Reason: "no handshake response within 20s"})

	w := h.do(httptest.NewRequest(http.MethodPost, "/notifications/transport/verify", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got notification.Verification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, notification.TimedOut, got.Status)
}

// ---------- Delivery ----------

func TestTestNotification(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		to         string
		result     notification.Result
		wantStatus int
	}{
		{"success", `{"to":"admin@venue.test"}`, "admin@venue.test", notification.Success("id@venue.test"), http.StatusOK},
		{"empty body uses fallback", ``, "", notification.Success("id@venue.test"), http.StatusOK},
		{"no recipient", `{}`, "", notification.Failure(notification.CodeNoRecipients, "no test recipient"), http.StatusBadRequest},
		{"invalid recipient", `{"to":"nope"}`, "nope", notification.Failure(notification.CodeInvalidRecipient, `invalid recipient "nope"`), http.StatusBadRequest},
		{"not configured", `{}`, "", notification.Failure(notification.CodeConfigurationMissing, "transport host is not configured"), http.StatusConflict},
		{"provider rejected", `{"to":"a@venue.test"}`, "a@venue.test", notification.Failure(notification.CodeSubmissionFailure, "535 auth failed"), http.StatusBadGateway},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.notificationSvc.On("TestConnectivity", mock.Anything, tc.to).Return(tc.result)

			w := h.do(httptest.NewRequest(http.MethodPost, "/notifications/test", strings.NewReader(tc.body)))
			assert.Equal(t, tc.wantStatus, w.Code)

			var got notification.Result
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tc.result, got)
		})
	}
}

func TestTestNotification_InvalidJSON(t *testing.T) {
	h := newHarness(t)
	w := h.do(httptest.NewRequest(http.MethodPost, "/notifications/test", strings.NewReader(`{bad`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListNotificationLog(t *testing.T) {
	entries := []storage.NotificationLogEntry{{ID: "1", Kind: "customer_welcome", Status: storage.DeliveryStatusSent}}

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		err        error
		wantStatus int
	}{
		{"default limit", "", 50, nil, http.StatusOK},
		{"explicit limit", "?limit=5", 5, nil, http.StatusOK},
		{"invalid limit falls back", "?limit=abc", 50, nil, http.StatusOK},
		{"negative limit falls back", "?limit=-3", 50, nil, http.StatusOK},
		{"store error", "", 50, errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			if tc.err != nil {
				h.notificationSvc.On("ListLog", mock.Anything, tc.wantLimit).Return(nil, tc.err)
			} else {
				h.notificationSvc.On("ListLog", mock.Anything, tc.wantLimit).Return(entries, nil)
			}

			w := h.do(httptest.NewRequest(http.MethodGet, "/notifications/log"+tc.query, nil))
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestPublishEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"accepted", `{"type":"vendor.registered","payload":{"email":"ada@vendor.test"}}`, nil, http.StatusAccepted},
		{"unknown type", `{"type":"booking.created","payload":{"email":"a@b.test"}}`, &service.ValidationError{Field: "type", Message: "unsupported"}, http.StatusBadRequest},
		{"queue full", `{"type":"vendor.approved","payload":{"email":"a@b.test"}}`, &service.UnavailableError{Resource: "event queue", Reason: "full"}, http.StatusServiceUnavailable},
		{"invalid JSON", `nope`, nil, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			if tc.body != `nope` {
				h.notificationSvc.On("PublishEvent", mock.Anything, mock.Anything).Return(tc.err)
			}

			w := h.do(httptest.NewRequest(http.MethodPost, "/notifications/events", strings.NewReader(tc.body)))
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	w := h.do(httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, build.Version, got["version"])
}
