package main

import (
	"github.com/spf13/cobra"

	"github.com/oksasatya/user-auth-service/config"
	pginfra "github.com/oksasatya/user-auth-service/internal/infrastructure/postgres"
	"github.com/oksasatya/user-auth-service/pkg/helpers"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run Postgres schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.MigrationsDir
		}
		return pginfra.RunMigrations(cfg.PostgresDSN(), dir, logger)
	},
}

func init() {
	migrateUpCmd.Flags().String("dir", "", "migrations directory (default MIGRATIONS_DIR)")
	migrateCmd.AddCommand(migrateUpCmd)
	rootCmd.AddCommand(migrateCmd)
}
