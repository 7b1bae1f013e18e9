package pipeline

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gyeh/apptstats/internal/config"
)

// Plan fetches and reshapes without writing charts, exports or database rows.
func Plan(ctx context.Context, log zerolog.Logger, cfg *config.Config) (*Source, []Result, error) {
	src, err := Fetch(ctx, log, http.DefaultClient, cfg)
	if err != nil {
		return nil, nil, err
	}
	results, err := Prepare(log, src.Path, cfg.Datasets)
	if err != nil {
		return nil, nil, err
	}
	return src, results, nil
}
