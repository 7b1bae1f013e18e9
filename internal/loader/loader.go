// Package loader reads fixed cell rectangles of a published workbook into
// wide tables.
package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/apptstats/internal/model"
	"github.com/gyeh/apptstats/internal/normalize"
)

// Region is a rectangle on a named sheet. The first row holds the column
// headers and the first column holds the row ids.
type Region struct {
	Sheet string `yaml:"sheet"`
	Range string `yaml:"range"` // e.g. "B3:H8"
}

// Workbook wraps an open spreadsheet file.
type Workbook struct {
	file *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// Sheets lists the sheet names in workbook order.
func (wb *Workbook) Sheets() []string {
	return wb.file.GetSheetList()
}

// Close releases the workbook.
func (wb *Workbook) Close() error {
	return wb.file.Close()
}

// bounds returns the 1-based corners of a range reference.
func bounds(ref string) (c1, r1, c2, r2 int, err error) {
	from, to, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(ref)), ":")
	if !ok {
		return 0, 0, 0, 0, fmt.Errorf("range %q: want FROM:TO", ref)
	}
	if c1, r1, err = excelize.CellNameToCoordinates(from); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("range %q: %w", ref, err)
	}
	if c2, r2, err = excelize.CellNameToCoordinates(to); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("range %q: %w", ref, err)
	}
	if c2 <= c1 || r2 < r1 {
		return 0, 0, 0, 0, fmt.Errorf("range %q: need an id column, at least one value column and a header row", ref)
	}
	return c1, r1, c2, r2, nil
}

// ReadRegion extracts r into a WideTable. Rows whose cells are all blank are
// skipped; any other blank or non-numeric value cell is an error.
func (wb *Workbook) ReadRegion(r Region) (model.WideTable, error) {
	c1, r1, c2, r2, err := bounds(r.Range)
	if err != nil {
		return model.WideTable{}, &RegionError{Sheet: r.Sheet, Err: err}
	}

	rows, err := wb.file.GetRows(r.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.WideTable{}, &RegionError{Sheet: r.Sheet, Err: err}
	}
	cell := func(col, row int) string {
		if row-1 >= len(rows) || col-1 >= len(rows[row-1]) {
			return ""
		}
		return rows[row-1][col-1]
	}

	var out model.WideTable
	seen := make(map[string]bool)
	for col := c1; col <= c2; col++ {
		h := normalize.Header(cell(col, r1))
		if h == "" || seen[h] {
			name, _ := excelize.CoordinatesToCellName(col, r1)
			return model.WideTable{}, &RegionError{Sheet: r.Sheet, Cell: name, Err: fmt.Errorf("blank or duplicate header %q", h)}
		}
		seen[h] = true
		if col == c1 {
			out.IDColumn = h
		} else {
			out.Columns = append(out.Columns, h)
		}
	}

	for row := r1 + 1; row <= r2; row++ {
		blank := true
		for col := c1; col <= c2; col++ {
			if strings.TrimSpace(cell(col, row)) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		wr := model.WideRow{ID: normalize.Label(cell(c1, row)), Values: make([]float64, 0, c2-c1)}
		if wr.ID == "" {
			name, _ := excelize.CoordinatesToCellName(c1, row)
			return model.WideTable{}, &RegionError{Sheet: r.Sheet, Cell: name, Err: fmt.Errorf("blank id")}
		}
		for col := c1 + 1; col <= c2; col++ {
			v, err := normalize.Count(cell(col, row))
			if err != nil {
				name, _ := excelize.CoordinatesToCellName(col, row)
				return model.WideTable{}, &RegionError{Sheet: r.Sheet, Cell: name, Err: err}
			}
			wr.Values = append(wr.Values, v)
		}
		out.Rows = append(out.Rows, wr)
	}
	return out, nil
}
