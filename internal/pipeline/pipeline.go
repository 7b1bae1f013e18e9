// Package pipeline runs fetch → load → reshape → render → export → publish
// for every configured dataset.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/apptstats/internal/config"
	"github.com/gyeh/apptstats/internal/db"
	"github.com/gyeh/apptstats/internal/model"
)

// Phase names reported in PipelineError.
const (
	PhaseFetch   = "fetch"
	PhaseLoad    = "load"
	PhaseReshape = "reshape"
	PhaseRender  = "render"
	PhaseExport  = "export"
	PhasePublish = "publish"
)

// PipelineError wraps an error with the phase and dataset where it occurred.
type PipelineError struct {
	Phase   string
	Dataset string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Dataset != "" {
		return fmt.Sprintf("%s %s: %s", e.Phase, e.Dataset, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Publisher stores the reshaped tables of a run.
type Publisher interface {
	Publish(ctx context.Context, log zerolog.Logger, pub db.Publication) (int64, error)
}

// Run executes the full pipeline. A nil publisher skips the publish phase.
// Nothing is published unless every dataset reshapes, renders and exports.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, publisher Publisher) (*model.RunSummary, error) {
	totalStart := time.Now()
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, &PipelineError{Phase: PhaseExport, Err: fmt.Errorf("create output dir: %w", err)}
	}

	// Phase 1: Fetch
	src, err := Fetch(ctx, log, http.DefaultClient, cfg)
	if err != nil {
		return nil, err
	}

	// Phases 2-3: Load and reshape
	results, err := Prepare(log, src.Path, cfg.Datasets)
	if err != nil {
		return nil, err
	}

	summary := &model.RunSummary{
		RunID:         runID.String(),
		SourcePath:    src.Path,
		SourceSHA256:  src.SHA256,
		DurationFetch: src.Duration,
	}

	// Phases 4-5: Render and export
	for _, res := range results {
		start := time.Now()
		ds, err := Render(log, cfg, res)
		if err != nil {
			return nil, err
		}
		if ds.ParquetPath, err = Export(log, cfg.OutDir, res); err != nil {
			return nil, err
		}
		ds.RowsWide = len(res.Wide.Rows)
		ds.RowsLong = len(res.Long.Records)
		ds.RowsAgeSex = len(res.AgeSex)
		ds.Duration = time.Since(start) + res.Duration
		summary.Datasets = append(summary.Datasets, ds)
	}

	// Phase 6: Publish
	if publisher != nil {
		start := time.Now()
		pub := db.Publication{
			RunID:        runID,
			SourceName:   filepath.Base(src.Path),
			SourceSHA256: src.SHA256,
		}
		for _, res := range results {
			pub.Datasets = append(pub.Datasets, db.DatasetTables{
				Name:   res.Dataset.Name,
				Long:   res.Long,
				AgeSex: res.AgeSex,
			})
		}
		n, err := publisher.Publish(ctx, log, pub)
		if err != nil {
			return nil, &PipelineError{Phase: PhasePublish, Err: err}
		}
		summary.RowsPublished = n
		summary.DurationPublish = time.Since(start)
	} else {
		log.Info().Msg("skipping publish (no database configured)")
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int("datasets", len(summary.Datasets)).
		Int64("rows_published", summary.RowsPublished).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("pipeline complete")

	return summary, nil
}
