package system

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/melbooking/melbooking_backend/internal/service/auth"
	"github.com/melbooking/melbooking_backend/pkg/authorize"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed RBAC policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			// booking db
			fmt.Println("Running migrations for the booking DB.")
			client, err := openRepo(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Schema.Create(ctx, cfg.Database.Migrations.SafeMode); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			// casbin db
			fmt.Println("Running migrations for the casbin DB.")
			authz, cleanup, err := openAuthorization(cfg)
			if err != nil {
				return err
			}
			defer cleanup(context.Background())

			slog.Info("Seeding Casbin policies...")
			if err := authorize.SeedDefaultPolicies(ctx, authz); err != nil {
				return fmt.Errorf("failed to seed policies: %w", err)
			}
			if cfg.Superadmin.Email != "" {
				id := authorize.SuperadminPrincipalID(auth.NormaliseEmail(cfg.Superadmin.Email))
				if err := authorize.AssignPlatformSuperAdmin(ctx, authz, id); err != nil {
					return fmt.Errorf("failed to grant superadmin role: %w", err)
				}
			}

			fmt.Println("Migrations executed successfully.")
			return nil
		},
	}

	return cmd
}
