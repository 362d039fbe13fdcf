// Package scheduler runs the periodic advisory mail transport probe.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/shaharia-lab/venuebook/internal/notification"
)

const defaultProbeTimeout = 30 * time.Second

// Prober runs one advisory handshake against the stored transport.
// notification.Executor implements it.
type Prober interface {
	VerifyCurrent(ctx context.Context) notification.Verification
}

// Config holds the scheduler configuration.
type Config struct {
	Prober Prober
	// Interval between probes. Zero or negative disables the probe.
	Interval time.Duration
	// Timeout bounds one probe, including configuration load.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Scheduler owns the gocron scheduler and the most recent probe outcome.
type Scheduler struct {
	cron   gocron.Scheduler
	cfg    Config
	logger *slog.Logger

	started bool

	mu   sync.Mutex
	last *notification.Verification
	at   time.Time
}

// New creates a new Scheduler.
func New(cfg Config) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultProbeTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{cron: cron, cfg: cfg, logger: logger}, nil
}

// Start schedules the probe and starts gocron. With no interval configured
// it only logs that probing is disabled.
func (s *Scheduler) Start(_ context.Context) error {
	if s.cfg.Interval <= 0 || s.cfg.Prober == nil {
		s.logger.Info("mail transport probe disabled")
		return nil
	}

	_, err := s.cron.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(s.probe),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("scheduling mail transport probe: %w", err)
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("mail transport probe scheduled", "interval", s.cfg.Interval)
	return nil
}

// Stop shuts down the gocron scheduler. It is a no-op when Start never
// scheduled the probe.
func (s *Scheduler) Stop() error {
	if !s.started {
		return nil
	}
	return s.cron.Shutdown()
}

// Last returns the most recent probe outcome and when it finished.
func (s *Scheduler) Last() (notification.Verification, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return notification.Verification{}, time.Time{}, false
	}
	return *s.last, s.at, true
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	v := s.cfg.Prober.VerifyCurrent(ctx)

	s.mu.Lock()
	s.last = &v
	s.at = time.Now()
	s.mu.Unlock()

	s.logger.Info("mail transport probe finished",
		"status", v.Status, "reason", v.Reason, "elapsed", v.Elapsed)
}
