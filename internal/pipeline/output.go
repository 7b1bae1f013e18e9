package pipeline

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/gyeh/apptstats/internal/config"
	"github.com/gyeh/apptstats/internal/model"
	"github.com/gyeh/apptstats/internal/parquetio"
	"github.com/gyeh/apptstats/internal/present"
)

// Render writes the static and interactive charts of one dataset.
func Render(log zerolog.Logger, cfg *config.Config, res Result) (model.DatasetSummary, error) {
	ds := model.DatasetSummary{Name: res.Dataset.Name}

	style, err := present.NewStyle(cfg.Style)
	if err != nil {
		return ds, &PipelineError{Phase: PhaseRender, Dataset: ds.Name, Err: err}
	}
	if res.Dataset.Title != "" {
		style = style.WithTitle(res.Dataset.Title)
	}

	ds.ChartPath = filepath.Join(cfg.OutDir, ds.Name+"."+cfg.ChartFormat)
	if err := present.SaveStatic(ds.ChartPath, res.Long, style); err != nil {
		return ds, &PipelineError{Phase: PhaseRender, Dataset: ds.Name, Err: err}
	}

	ds.HTMLPath = filepath.Join(cfg.OutDir, ds.Name+".html")
	if err := present.SaveInteractive(ds.HTMLPath, res.Long, style); err != nil {
		return ds, &PipelineError{Phase: PhaseRender, Dataset: ds.Name, Err: err}
	}

	log.Info().
		Str("dataset", ds.Name).
		Str("chart", ds.ChartPath).
		Str("html", ds.HTMLPath).
		Msg("charts rendered")
	return ds, nil
}

// Export writes the long table of one dataset, plus its age/sex records when
// present, as Parquet. Returns the long table's path.
func Export(log zerolog.Logger, outDir string, res Result) (string, error) {
	name := res.Dataset.Name
	path := filepath.Join(outDir, name+".parquet")
	if err := parquetio.WriteLong(path, name, res.Long); err != nil {
		return "", &PipelineError{Phase: PhaseExport, Dataset: name, Err: err}
	}

	if len(res.AgeSex) > 0 {
		asPath := filepath.Join(outDir, name+"_records.parquet")
		if err := parquetio.WriteAgeSex(asPath, name, res.AgeSex); err != nil {
			return "", &PipelineError{Phase: PhaseExport, Dataset: name, Err: err}
		}
	}

	log.Info().Str("dataset", name).Str("file", path).Int("rows", len(res.Long.Records)).Msg("exported")
	return path, nil
}
