package cli

import (
	"fmt"

	"restaurant-admin/config"
	"restaurant-admin/models"
	"restaurant-admin/store"

	"github.com/spf13/cobra"
)

var createTablesCmd = &cobra.Command{
	Use:   "create-tables",
	Short: "Create every table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := config.OpenDB(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		return config.Migrate(db)
	},
}

var dropTablesCmd = &cobra.Command{
	Use:   "drop-tables",
	Short: "Drop every table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := config.OpenDB(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		return config.DropTables(db)
	},
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account named by ADMIN_USERNAME",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		models.PasswordCost = cfg.BcryptCost
		db, err := config.OpenDB(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if err := config.Migrate(db); err != nil {
			return err
		}
		return config.SeedAdmin(cmd.Context(), cfg, store.New(db))
	},
}
