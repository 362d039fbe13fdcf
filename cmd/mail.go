package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/logger"
	"github.com/shaharia-lab/venuebook/internal/notification"
)

// NewMailCmd returns the "mail" command group for checking the transport
// from a terminal.
func NewMailCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Inspect and test the mail transport",
	}
	cmd.AddCommand(newMailTestCmd(cfg))
	cmd.AddCommand(newMailVerifyCmd(cfg))
	return cmd
}

func newMailTestCmd(cfg *config.AppConfig) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send a connectivity test message",
		Long: `Send a test message through the stored transport configuration and print
the structured result. Without --to the admin notification address is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				res := a.service.TestConnectivity(ctx, to)
				if err := printJSON(cmd, res); err != nil {
					return err
				}
				if !res.OK {
					return fmt.Errorf("connectivity test failed: %s", res)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient address (defaults to the admin notification address)")
	return cmd
}

func newMailVerifyCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Run the advisory transport handshake",
		Long: `Connect, negotiate TLS and authenticate against the stored transport without
sending anything. Some providers fail this check while still accepting mail,
so a failure here is informational.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				v := a.service.VerifyTransport(ctx)
				if err := printJSON(cmd, v); err != nil {
					return err
				}
				if v.Status != notification.Verified {
					fmt.Fprintf(cmd.ErrOrStderr(), "verification %s: %s\n", v.Status, v.Reason)
				}
				return nil
			})
		},
	}
}

// withApp wires the notification stack with console logging and runs fn.
func withApp(cmd *cobra.Command, cfg *config.AppConfig, fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, 2*time.Minute)
	defer cancelTimeout()

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.SlogLevel())
	a, err := newApp(ctx, cfg, log, log)
	if err != nil {
		return err
	}
	runErr := fn(ctx, a)
	if err := a.close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
