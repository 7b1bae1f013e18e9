package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/apptstats/internal/db"
	"github.com/gyeh/apptstats/internal/exitcode"
	"github.com/gyeh/apptstats/internal/logging"
	"github.com/gyeh/apptstats/internal/pipeline"
)

var runMigrate bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, reshape, render, export and optionally publish",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&cfg.DSN, "dsn", os.Getenv("APPTSTATS_DB_URL"), "Postgres connection string; publishing is skipped when empty (or set APPTSTATS_DB_URL)")
	f.StringVar(&cfg.WorkDir, "work-dir", "", "Download directory (default: --out)")
	f.StringVar(&cfg.ChartFormat, "chart-format", cfg.ChartFormat, "Static chart format: png, svg or pdf")
	f.BoolVar(&runMigrate, "migrate", false, "Apply database migrations before publishing")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	validate := cfg.Validate
	if runMigrate {
		validate = cfg.ValidateWithDSN
	}
	if err := validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var publisher pipeline.Publisher
	if cfg.DSN != "" {
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.PublishError)
		}
		defer pool.Close()

		if runMigrate {
			if err := db.ApplyMigrations(ctx, pool, log); err != nil {
				log.Error().Err(err).Msg("migration failed")
				os.Exit(exitcode.PublishError)
			}
		}
		publisher = db.PoolPublisher{Pool: pool}
	}

	summary, err := pipeline.Run(ctx, log, &cfg, publisher)
	if err != nil {
		fail(log, "run failed", err)
	}

	for _, ds := range summary.Datasets {
		fmt.Printf("%-10s %3d wide rows → %3d long rows  %s  %s  %s\n",
			ds.Name, ds.RowsWide, ds.RowsLong, ds.ChartPath, ds.HTMLPath, ds.ParquetPath)
	}
	fmt.Printf("Run %s complete: %d rows published (%.1fs)\n",
		summary.RunID, summary.RowsPublished, summary.DurationTotal.Seconds())
	return nil
}
