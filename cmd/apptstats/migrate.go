package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/apptstats/internal/db"
	"github.com/gyeh/apptstats/internal/exitcode"
	"github.com/gyeh/apptstats/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE:  runMigrations,
}

func init() {
	migrateCmd.Flags().StringVar(&cfg.DSN, "dsn", os.Getenv("APPTSTATS_DB_URL"), "Postgres connection string (or set APPTSTATS_DB_URL)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrations(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or APPTSTATS_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.PublishError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.PublishError)
	}

	log.Info().Msg("all migrations applied successfully")
	return nil
}
