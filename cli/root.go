// Package cli wires the restaurant-admin commands.
package cli

import (
	"fmt"
	"os"

	"restaurant-admin/config"

	"github.com/spf13/cobra"
)

// envFile is set by the --env-file flag.
var envFile string

var rootCmd = &cobra.Command{
	Use:   "restaurant-admin",
	Short: "Restaurant and menu administration backend",
	Long: `restaurant-admin manages users, restaurants, ingredients, recipes and
menu cards through an authenticated admin API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createTablesCmd)
	rootCmd.AddCommand(dropTablesCmd)
	rootCmd.AddCommand(seedAdminCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
