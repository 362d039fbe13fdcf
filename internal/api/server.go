package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shaharia-lab/venuebook/internal/service"
)

const errInvalidJSONBody = "invalid JSON body"

// Server holds all dependencies for the REST API handlers.
type Server struct {
	notificationSvc service.NotificationService
	logger          *slog.Logger
}

// New creates a new API Server backed by the provided services.
func New(notificationSvc service.NotificationService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	// Mail transport settings
	r.Get("/notifications/transport", s.handleGetTransport)
	r.Put("/notifications/transport", s.handleUpdateTransport)
	r.Post("/notifications/transport/verify", s.handleVerifyTransport)

	// Delivery
	r.Post("/notifications/test", s.handleTestNotification)
	r.Get("/notifications/log", s.handleListNotificationLog)
	r.Post("/notifications/events", s.handlePublishEvent)

	r.Get("/version", s.handleVersion)
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps typed service errors to status codes. Anything
// untyped is logged and reported as fallback.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var ve *service.ValidationError
	var ue *service.UnavailableError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &ue):
		writeError(w, http.StatusServiceUnavailable, ue.Error())
	default:
		s.logger.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
