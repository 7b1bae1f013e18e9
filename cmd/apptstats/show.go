package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/apptstats/internal/exitcode"
	"github.com/gyeh/apptstats/internal/logging"
	"github.com/gyeh/apptstats/internal/parquetio"
	"github.com/gyeh/apptstats/internal/present"
)

var (
	showFile string
	showHTML string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print an exported long table and optionally re-render its chart",
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFile, "file", "", "Path to an exported .parquet long table (required)")
	showCmd.Flags().StringVar(&showHTML, "html", "", "Write an interactive chart of the table to this path")
	_ = showCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	l, err := parquetio.ReadLong(showFile)
	if err != nil {
		log.Error().Err(err).Str("file", showFile).Msg("failed to read export")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("=== %s ===\n", showFile)
	printLong(l)

	if showHTML == "" {
		return nil
	}
	style, err := present.NewStyle(cfg.Style)
	if err != nil {
		log.Error().Err(err).Msg("invalid chart style")
		os.Exit(exitcode.UsageError)
	}
	if err := present.SaveInteractive(showHTML, l, style); err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(exitcode.RenderError)
	}
	log.Info().Str("html", showHTML).Msg("chart written")
	return nil
}
