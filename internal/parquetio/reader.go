package parquetio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/apptstats/internal/model"
)

// Reader streams Rows from an exported long table.
type Reader struct {
	file   *os.File
	pf     *parquet.File
	reader *parquet.GenericReader[Row]
}

// Open opens an exported long table.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[Row](pf)
	return &Reader{file: f, pf: pf, reader: r}, nil
}

// NumRows returns the total number of rows in the file.
func (r *Reader) NumRows() int64 {
	return r.reader.NumRows()
}

// GroupColumn returns the group column name recorded at export time.
func (r *Reader) GroupColumn() string {
	v, _ := r.pf.Lookup(metaGroupColumn)
	return v
}

// Dataset returns the dataset name recorded at export time.
func (r *Reader) Dataset() string {
	v, _ := r.pf.Lookup(metaDataset)
	return v
}

// Order returns the display order recorded at export time. ok is false for
// files written without it.
func (r *Reader) Order() (order []string, ok bool, err error) {
	v, ok := r.pf.Lookup(metaOrder)
	if !ok {
		return nil, false, nil
	}
	if err := json.Unmarshal([]byte(v), &order); err != nil {
		return nil, true, fmt.Errorf("decode display order: %w", err)
	}
	return order, true, nil
}

// HasPct reports whether the exported table carried percentages. Files
// written without the flag are assumed to.
func (r *Reader) HasPct() (bool, error) {
	v, ok := r.pf.Lookup(metaHasPct)
	if !ok {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", metaHasPct, err)
	}
	return b, nil
}

// Read reads up to len(rows) rows. Returns io.EOF when done.
func (r *Reader) Read(rows []Row) (int, error) {
	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

// Close releases all resources.
func (r *Reader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// ReadLong reads a whole exported file back into a LongTable, restoring the
// display order and percentage flag from the file footer. Older files without
// a stored order get one rebuilt from the row ranks.
func ReadLong(path string) (model.LongTable, error) {
	r, err := Open(path)
	if err != nil {
		return model.LongTable{}, err
	}
	defer r.Close()

	hasPct, err := r.HasPct()
	if err != nil {
		return model.LongTable{}, err
	}
	order, stored, err := r.Order()
	if err != nil {
		return model.LongTable{}, err
	}

	l := model.LongTable{GroupColumn: r.GroupColumn(), HasPct: hasPct, Order: order}
	ranks := make(map[string]int32)
	buf := make([]Row, 256)
	for {
		n, readErr := r.Read(buf)
		for _, row := range buf[:n] {
			l.Records = append(l.Records, model.LongRecord{
				Group:    row.Group,
				Category: row.Category,
				Count:    row.Count,
				Pct:      row.Pct,
			})
			if row.Rank >= 0 {
				ranks[row.Category] = row.Rank
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return model.LongTable{}, readErr
		}
	}

	if stored {
		return l, nil
	}
	for c := range ranks {
		l.Order = append(l.Order, c)
	}
	sort.Slice(l.Order, func(i, j int) bool { return ranks[l.Order[i]] < ranks[l.Order[j]] })
	return l, nil
}
