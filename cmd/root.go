package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/melbooking/melbooking_backend/cmd/http"
	systemcmd "github.com/melbooking/melbooking_backend/cmd/system"
	workercmd "github.com/melbooking/melbooking_backend/cmd/worker"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "melbooking",
	Short: "Multi-tenant booking backend for massage and spa stores.",
	Long: `melbooking serves the public booking pages, the store admin console and
the superadmin console of a group of massage stores, one deployment for all
stores.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(workercmd.NewWorkerCommand())
}
