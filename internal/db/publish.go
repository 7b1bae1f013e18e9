package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/apptstats/internal/model"
	embedsql "github.com/gyeh/apptstats/internal/sql"
)

// DatasetTables holds the reshaped output of one dataset.
type DatasetTables struct {
	Name   string
	Long   model.LongTable
	AgeSex []model.AgeSexRecord
}

// Publication is everything one run publishes.
type Publication struct {
	RunID        uuid.UUID
	SourceName   string
	SourceSHA256 string
	Datasets     []DatasetTables
}

// Publish replaces any earlier run of the same source file with pub, in a
// single transaction. Returns the number of record rows written.
func Publish(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pub Publication) (int64, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, embedsql.DeleteRunsBySource, pub.SourceSHA256)
	if err != nil {
		return 0, fmt.Errorf("delete previous runs: %w", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		log.Info().Int64("runs_replaced", n).Str("sha256", pub.SourceSHA256).Msg("replacing earlier publication")
	}

	if _, err := tx.Exec(ctx, embedsql.InsertRun, pub.RunID, pub.SourceName, pub.SourceSHA256); err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	var total int64
	for _, ds := range pub.Datasets {
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"stats", "long_records"},
			LongColumns,
			NewLongSource(pub.RunID, ds.Name, ds.Long),
		)
		if err != nil {
			return 0, fmt.Errorf("copy %s long records: %w", ds.Name, err)
		}
		total += n

		if len(ds.AgeSex) > 0 {
			n, err = tx.CopyFrom(ctx,
				pgx.Identifier{"stats", "age_sex_records"},
				AgeSexColumns,
				AgeSexSource(pub.RunID, ds.Name, ds.AgeSex),
			)
			if err != nil {
				return 0, fmt.Errorf("copy %s age/sex records: %w", ds.Name, err)
			}
			total += n
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit publish: %w", err)
	}

	log.Info().
		Str("run_id", pub.RunID.String()).
		Int64("rows", total).
		Dur("duration", time.Since(start)).
		Msg("publish complete")
	return total, nil
}

// CountPublished returns the number of record rows stored for runID.
func CountPublished(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID) (int64, error) {
	var n int64
	if err := pool.QueryRow(ctx, embedsql.CountPublished, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count published rows: %w", err)
	}
	return n, nil
}

// PoolPublisher publishes through a connection pool.
type PoolPublisher struct {
	Pool *pgxpool.Pool
}

// Publish calls Publish with the wrapped pool.
func (p PoolPublisher) Publish(ctx context.Context, log zerolog.Logger, pub Publication) (int64, error) {
	return Publish(ctx, p.Pool, log, pub)
}
