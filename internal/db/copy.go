package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/apptstats/internal/model"
)

// LongColumns are the COPY columns of stats.long_records.
var LongColumns = []string{
	"run_id",
	"dataset",
	"group_column",
	"group_label",
	"category",
	"category_rank",
	"count",
	"pct",
}

// AgeSexColumns are the COPY columns of stats.age_sex_records.
var AgeSexColumns = []string{
	"run_id",
	"dataset",
	"age_band",
	"sex",
	"maternity",
	"count",
	"pct",
}

// LongSource implements pgx.CopyFromSource over the records of a LongTable,
// prefixing each row with the run and dataset it belongs to.
type LongSource struct {
	runID   uuid.UUID
	dataset string
	table   model.LongTable
	i       int
}

// NewLongSource creates a CopyFromSource for one dataset's long table.
func NewLongSource(runID uuid.UUID, dataset string, l model.LongTable) *LongSource {
	return &LongSource{runID: runID, dataset: dataset, table: l, i: -1}
}

// Next advances to the next record.
func (s *LongSource) Next() bool {
	s.i++
	return s.i < len(s.table.Records)
}

// Values returns the current record in LongColumns order.
func (s *LongSource) Values() ([]any, error) {
	r := s.table.Records[s.i]
	return []any{
		s.runID,
		s.dataset,
		s.table.GroupColumn,
		r.Group,
		r.Category,
		int32(s.table.Rank(r.Category)),
		r.Count,
		r.Pct,
	}, nil
}

// Err always returns nil; the records are already in memory.
func (s *LongSource) Err() error {
	return nil
}

var _ pgx.CopyFromSource = (*LongSource)(nil)

// AgeSexSource returns a CopyFromSource over age/sex records.
func AgeSexSource(runID uuid.UUID, dataset string, recs []model.AgeSexRecord) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
		r := recs[i]
		return []any{runID, dataset, r.AgeBand, r.Sex, r.Maternity, r.Count, r.Pct}, nil
	})
}
