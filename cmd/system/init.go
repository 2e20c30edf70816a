package system

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/melbooking/melbooking_backend/pkg/database"
)

func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the booking and casbin databases",
		Long: `Create every database listed under server.databases that does not exist yet.
Run this once before "system migrate" on a fresh postgres server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			created, err := database.InitializeDatabases(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize databases: %w", err)
			}
			if len(created) == 0 {
				fmt.Println("All databases already exist.")
				return nil
			}
			fmt.Printf("Created: %s\n", strings.Join(created, ", "))
			return nil
		},
	}

	return cmd
}
