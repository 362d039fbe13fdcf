package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/venuebook/internal/api"
	"github.com/shaharia-lab/venuebook/internal/build"
	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/logger"
	"github.com/shaharia-lab/venuebook/internal/scheduler"
	"github.com/shaharia-lab/venuebook/internal/server"
)

// NewServeCmd returns the "serve" subcommand that starts the admin API and
// the event-driven notification pipeline.
func NewServeCmd(cfg *config.AppConfig) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the notification service and admin API",
		Long: `Start the Venuebook HTTP server. It exposes the mail transport admin API
under /api, Prometheus metrics under /metrics and delivers notifications for
business events published to /api/notifications/events.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// CLI flags override env config.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			logFile := filepath.Join(cfg.LogDir(), "system.log")
			printBanner(build.Version, fmt.Sprintf("http://localhost:%d", cfg.Port), logFile)

			if err := runServe(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "An error occurred. Please check the logs at: %s\n", logFile)
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", cfg.Port, "HTTP server port (overrides PORT env var)")
	return cmd
}

func runServe(cfg *config.AppConfig) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sysLogger, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	mailLogger, err := logger.NewMailLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing mail logger: %w", err)
	}

	sysLogger.Info("venuebook starting",
		slog.Int("port", cfg.Port),
		slog.String("data_dir", cfg.DataDir),
		slog.String("version", build.Version),
		slog.String("commit", build.CommitSHA),
		slog.String("build_date", build.BuildDate),
	)

	a, err := newApp(ctx, cfg, sysLogger, mailLogger)
	if err != nil {
		sysLogger.Error("startup failed", "error", err)
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			sysLogger.Error("shutdown failed", "error", err)
		}
	}()

	probe, err := scheduler.New(scheduler.Config{
		Prober:   a.executor,
		Interval: a.policy.ProbeInterval,
		Logger:   mailLogger,
	})
	if err != nil {
		return err
	}
	if err := probe.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := probe.Stop(); err != nil {
			sysLogger.Warn("stopping probe scheduler", "error", err)
		}
	}()

	srv := server.New(api.New(a.service, sysLogger), server.Options{
		Port:           cfg.Port,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Probe:          probe,
	}, sysLogger)

	sysLogger.Info("server ready", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
	return srv.Run(ctx)
}

// printBanner writes the startup banner to stdout. Structured logs go to the
// log file instead.
func printBanner(version, serverURL, logFile string) {
	fmt.Printf("Venuebook %s running.\n", version)
	fmt.Printf("Admin API: %s/api\n", serverURL)
	fmt.Printf("Logs: %s\n\n", logFile)
}
