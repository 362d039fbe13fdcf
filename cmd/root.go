package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/venuebook/internal/config"
)

// NewRootCmd builds the venuebook command tree around cfg.
func NewRootCmd(cfg *config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "venuebook",
		Short:         "Venuebook notification delivery service",
		Long:          "Venuebook delivers account and vendor lifecycle email for the venue booking platform.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(NewServeCmd(cfg))
	root.AddCommand(NewMailCmd(cfg))
	root.AddCommand(NewUsersCmd(cfg))
	root.AddCommand(NewVersionCmd())
	return root
}

// Execute loads configuration from the environment and runs the root command.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
