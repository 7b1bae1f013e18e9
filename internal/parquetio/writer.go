// Package parquetio exports long tables to Parquet and reads them back.
package parquetio

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/apptstats/internal/model"
)

// Metadata keys stored in the file footer.
const (
	metaGroupColumn = "apptstats.group_column"
	metaDataset     = "apptstats.dataset"
	metaOrder       = "apptstats.order"   // JSON array, top of stack first
	metaHasPct      = "apptstats.has_pct" // "true" or "false"
)

// Row is the on-disk form of a model.LongRecord. Rank is the category's
// position in the display order, or -1 when no order was assigned.
type Row struct {
	Group    string  `parquet:"group"`
	Category string  `parquet:"category"`
	Rank     int32   `parquet:"rank"`
	Count    float64 `parquet:"count"`
	Pct      float64 `parquet:"pct"`
}

// WriteLong writes l to path, replacing any existing file.
func WriteLong(path, dataset string, l model.LongTable) error {
	rows := make([]Row, len(l.Records))
	for i, r := range l.Records {
		rows[i] = Row{
			Group:    r.Group,
			Category: r.Category,
			Rank:     int32(l.Rank(r.Category)),
			Count:    r.Count,
			Pct:      r.Pct,
		}
	}
	order, err := json.Marshal(l.Order)
	if err != nil {
		return fmt.Errorf("encode display order: %w", err)
	}
	return write(path, rows,
		parquet.KeyValueMetadata(metaGroupColumn, l.GroupColumn),
		parquet.KeyValueMetadata(metaDataset, dataset),
		parquet.KeyValueMetadata(metaOrder, string(order)),
		parquet.KeyValueMetadata(metaHasPct, strconv.FormatBool(l.HasPct)),
	)
}

// WriteAgeSex writes age/sex records to path.
func WriteAgeSex(path, dataset string, recs []model.AgeSexRecord) error {
	return write(path, recs, parquet.KeyValueMetadata(metaDataset, dataset))
}

func write[T any](path string, rows []T, opts ...parquet.WriterOption) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[T](f, opts...)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
