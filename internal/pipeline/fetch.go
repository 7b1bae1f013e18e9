package pipeline

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/apptstats/internal/config"
	"github.com/gyeh/apptstats/internal/fetch"
	"github.com/gyeh/apptstats/internal/normalize"
)

// Source is the workbook a run reads.
type Source struct {
	Path     string
	SHA256   string
	Duration time.Duration
}

// Fetch resolves cfg.Source to a local file and hashes it.
func Fetch(ctx context.Context, log zerolog.Logger, client *http.Client, cfg *config.Config) (*Source, error) {
	start := time.Now()

	dir := cfg.WorkDir
	if dir == "" {
		dir = cfg.OutDir
	}
	if fetch.IsRemote(cfg.Source) {
		log.Info().Str("url", cfg.Source).Msg("downloading source workbook")
	}
	path, err := fetch.Fetch(ctx, client, cfg.Source, dir)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseFetch, Err: err}
	}

	sha, err := normalize.FileHash(path)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseFetch, Err: err}
	}

	src := &Source{Path: path, SHA256: sha, Duration: time.Since(start)}
	log.Info().
		Str("file", path).
		Str("sha256", sha).
		Dur("duration", src.Duration).
		Msg("source ready")
	return src, nil
}
