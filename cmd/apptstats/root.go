package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/apptstats/internal/config"
	"github.com/gyeh/apptstats/internal/exitcode"
	"github.com/gyeh/apptstats/internal/pipeline"
	"github.com/gyeh/apptstats/internal/reshape"
)

var (
	cfg        = config.Default()
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "apptstats",
	Short: "Outpatient appointment statistics → tidy tables and stacked bar charts",
	Long: "Downloads the published outpatient activity workbook, reshapes its summary tables " +
		"into long form with derived percentages, and renders, exports and publishes them.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile == "" {
			return nil
		}
		return cfg.LoadFromFile(configFile)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.Source, "source", os.Getenv("APPTSTATS_SOURCE"), "Workbook URL or local path (or set APPTSTATS_SOURCE)")
	pf.StringVar(&configFile, "config", "", "YAML file with datasets and chart style")
	pf.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Output directory for charts and exports")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
}

// exitFor maps a pipeline failure to the process exit code.
func exitFor(err error) int {
	switch {
	case errors.Is(err, reshape.ErrSchema):
		return exitcode.SchemaError
	case errors.Is(err, reshape.ErrComputation):
		return exitcode.ComputationError
	}

	var pe *pipeline.PipelineError
	if errors.As(err, &pe) {
		switch pe.Phase {
		case pipeline.PhaseFetch:
			return exitcode.FetchError
		case pipeline.PhaseLoad:
			return exitcode.LoadError
		case pipeline.PhaseReshape:
			return exitcode.SchemaError
		case pipeline.PhaseRender:
			return exitcode.RenderError
		case pipeline.PhaseExport:
			return exitcode.ExportError
		case pipeline.PhasePublish:
			return exitcode.PublishError
		}
	}
	return exitcode.UsageError
}

// fail logs err with its phase and exits with the matching code.
func fail(log zerolog.Logger, msg string, err error) {
	ev := log.Error().Err(err)
	var pe *pipeline.PipelineError
	if errors.As(err, &pe) {
		ev = ev.Str("phase", pe.Phase)
		if pe.Dataset != "" {
			ev = ev.Str("dataset", pe.Dataset)
		}
	}
	ev.Msg(msg)
	os.Exit(exitFor(err))
}
