package pipeline

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/apptstats/internal/config"
	"github.com/gyeh/apptstats/internal/loader"
	"github.com/gyeh/apptstats/internal/model"
	"github.com/gyeh/apptstats/internal/reshape"
)

// Result is one dataset after loading and reshaping.
type Result struct {
	Dataset  config.Dataset
	Wide     model.WideTable
	Long     model.LongTable
	AgeSex   []model.AgeSexRecord
	Duration time.Duration
}

// Prepare loads every dataset region from the workbook at path and reshapes
// it. The first failing dataset aborts the whole run.
func Prepare(log zerolog.Logger, path string, datasets []config.Dataset) ([]Result, error) {
	wb, err := loader.Open(path)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseLoad, Err: err}
	}
	defer wb.Close()

	results := make([]Result, 0, len(datasets))
	for _, ds := range datasets {
		start := time.Now()

		wide, err := wb.ReadRegion(ds.Region)
		if err != nil {
			return nil, &PipelineError{Phase: PhaseLoad, Dataset: ds.Name, Err: err}
		}

		long, err := ds.Recipe().Apply(wide)
		if err != nil {
			return nil, &PipelineError{Phase: PhaseReshape, Dataset: ds.Name, Err: err}
		}

		res := Result{Dataset: ds, Wide: wide, Long: long}
		if len(ds.Sexes) > 0 {
			if res.AgeSex, err = reshape.ToAgeSex(long, ds.Sexes); err != nil {
				return nil, &PipelineError{Phase: PhaseReshape, Dataset: ds.Name, Err: err}
			}
		}
		res.Duration = time.Since(start)

		log.Info().
			Str("dataset", ds.Name).
			Int("rows_wide", len(wide.Rows)).
			Int("rows_long", len(long.Records)).
			Int("rows_age_sex", len(res.AgeSex)).
			Dur("duration", res.Duration).
			Msg("dataset reshaped")
		results = append(results, res)
	}
	return results, nil
}
