package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shaharia-lab/venuebook/internal/api"
	"github.com/shaharia-lab/venuebook/internal/metrics"
	"github.com/shaharia-lab/venuebook/internal/notification"
)

// Options configures the HTTP server.
type Options struct {
	Port int
	// AllowedOrigins is passed to the CORS middleware. Empty means "*".
	AllowedOrigins []string
	// Probe, when set, reports the last scheduled transport check on /health.
	Probe ProbeStatus
}

// ProbeStatus exposes the most recent advisory transport check.
// scheduler.Scheduler implements it.
type ProbeStatus interface {
	Last() (notification.Verification, time.Time, bool)
}

type probeReport struct {
	notification.Verification
	CheckedAt time.Time `json:"checked_at"`
}

type healthReport struct {
	Status    string       `json:"status"`
	MailProbe *probeReport `json:"mail_probe,omitempty"`
}

// Server is the HTTP server for the venuebook admin API.
type Server struct {
	port       int
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a new Server mounting apiSrv under /api.
func New(apiSrv *api.Server, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		port:   opts.Port,
		logger: logger,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.routes(apiSrv, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes(apiSrv *api.Server, opts Options) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Health check. The probe is advisory, so a failed check never changes
	// the status code.
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		report := healthReport{Status: "ok"}
		if opts.Probe != nil {
			if v, at, ok := opts.Probe.Last(); ok {
				report.MailProbe = &probeReport{Verification: v, CheckedAt: at}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(report)
	})

	r.Handle("/metrics", metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		apiSrv.Mount(r)
	})
	return r
}

// Run starts the HTTP server and blocks until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.httpServer.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// requestLogger is a chi middleware that logs each incoming request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
