package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/notification"
)

const defaultLogLimit = 50

type testNotificationRequest struct {
	To string `json:"to"`
}

type publishEventRequest struct {
	Type    string            `json:"type"`
	Payload map[string]string `json:"payload"`
}

// handleGetTransport returns the transport configuration with the password masked.
func (s *Server) handleGetTransport(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.notificationSvc.GetTransport(r.Context())
	if err != nil {
		s.logger.Error("load transport configuration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transport configuration")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handleUpdateTransport persists a new transport configuration.
// If the submitted password is the mask sentinel ("***"), the existing password is kept.
func (s *Server) handleUpdateTransport(w http.ResponseWriter, r *http.Request) {
	var incoming config.TransportConfig
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	if err := s.notificationSvc.UpdateTransport(r.Context(), &incoming); err != nil {
		s.writeServiceError(w, err, "failed to save transport configuration")
		return
	}

	// Return the saved configuration (with masked password).
	cfg, err := s.notificationSvc.GetTransport(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reload transport configuration")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handleVerifyTransport runs the advisory handshake and reports its outcome.
// The status is always 200; the body says whether the handshake succeeded.
func (s *Server) handleVerifyTransport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.notificationSvc.VerifyTransport(r.Context()))
}

// handleTestNotification sends a test message. The body is optional; an
// empty recipient falls back to the admin notification address.
func (s *Server) handleTestNotification(w http.ResponseWriter, r *http.Request) {
	var req testNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	res := s.notificationSvc.TestConnectivity(r.Context(), req.To)
	writeJSON(w, resultStatus(res), res)
}

// handleListNotificationLog returns recent notification delivery log entries.
// Accepts an optional ?limit=N query parameter (default 50).
func (s *Server) handleListNotificationLog(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.notificationSvc.ListLog(r.Context(), limit)
	if err != nil {
		s.logger.Error("list notification log failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notification log")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handlePublishEvent enqueues a business event. Delivery happens in the
// background, so success is 202 Accepted.
func (s *Server) handlePublishEvent(w http.ResponseWriter, r *http.Request) {
	var req publishEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	if err := s.notificationSvc.PublishEvent(req.Type, req.Payload); err != nil {
		s.writeServiceError(w, err, "failed to publish event")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted", "type": req.Type})
}

// resultStatus maps a delivery Result to an HTTP status. The Result itself
// is always the response body.
func resultStatus(res notification.Result) int {
	if res.OK {
		return http.StatusOK
	}
	switch res.Code {
	case notification.CodeNoRecipients, notification.CodeInvalidRecipient:
		return http.StatusBadRequest
	case notification.CodeConfigurationMissing:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
