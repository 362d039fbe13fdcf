package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/venuebook/internal/config"
	"github.com/shaharia-lab/venuebook/internal/storage"
)

// NewUsersCmd returns the "users" command group that maintains the local
// user directory used for admin recipients.
func NewUsersCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the local user directory",
	}
	cmd.AddCommand(newUsersAddCmd(cfg))
	cmd.AddCommand(newUsersListCmd(cfg))
	return cmd
}

func newUsersAddCmd(cfg *config.AppConfig) *cobra.Command {
	var u storage.User

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u.Email = strings.TrimSpace(u.Email)
			if u.Email == "" {
				return fmt.Errorf("--email is required")
			}
			switch u.Role {
			case storage.RoleAdmin, storage.RoleVendor, storage.RoleCustomer:
			default:
				return fmt.Errorf("unknown role %q", u.Role)
			}
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				if err := a.users.Save(ctx, u); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", u.Email, u.Role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&u.ID, "id", "", "User ID (generated when empty)")
	cmd.Flags().StringVar(&u.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&u.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&u.Role, "role", storage.RoleAdmin, "Role: admin, vendor or customer")
	return cmd
}

func newUsersListCmd(cfg *config.AppConfig) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active users with a role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *app) error {
				users, err := a.users.ListActiveByRole(ctx, role)
				if err != nil {
					return err
				}
				return printJSON(cmd, users)
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", storage.RoleAdmin, "Role to list")
	return cmd
}
