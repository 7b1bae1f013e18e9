package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/apptstats/internal/exitcode"
	"github.com/gyeh/apptstats/internal/logging"
	"github.com/gyeh/apptstats/internal/model"
	"github.com/gyeh/apptstats/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry run: load and reshape, print the long tables (no writes)",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	src, results, err := pipeline.Plan(context.Background(), log, &cfg)
	if err != nil {
		fail(log, "plan failed", err)
	}

	fmt.Println("=== apptstats plan ===")
	fmt.Printf("Source:  %s\n", src.Path)
	fmt.Printf("SHA-256: %s\n", src.SHA256)
	for _, res := range results {
		fmt.Println()
		fmt.Printf("[%s] %s!%s  %d rows × %d columns\n",
			res.Dataset.Name, res.Dataset.Sheet, res.Dataset.Range, len(res.Wide.Rows), len(res.Wide.Columns))
		printLong(res.Long)
	}
	return nil
}

func printLong(l model.LongTable) {
	fmt.Printf("  %-12s %-16s %12s %8s\n", l.GroupColumn, model.ColumnCategory, model.ColumnCount, model.ColumnPct)
	for _, r := range l.Records {
		fmt.Printf("  %-12s %-16s %12.0f %7.2f%%\n", r.Group, r.Category, r.Count, r.Pct)
	}
	if len(l.Order) > 0 {
		fmt.Printf("  stack order (top first): %v\n", l.Order)
	}
}
