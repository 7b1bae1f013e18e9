package model

// WideTable is a loaded summary table: one row per entity (e.g. a year),
// one numeric column per raw category. Values in each row align with Columns.
type WideTable struct {
	IDColumn string
	Columns  []string
	Rows     []WideRow
}

// WideRow is a single entity of a WideTable.
type WideRow struct {
	ID     string
	Values []float64
}

// ColumnIndex returns the position of name in Columns, or -1.
func (w WideTable) ColumnIndex(name string) int {
	for i, c := range w.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can build a new table without
// touching the receiver.
func (w WideTable) Clone() WideTable {
	out := WideTable{
		IDColumn: w.IDColumn,
		Columns:  append([]string(nil), w.Columns...),
		Rows:     make([]WideRow, len(w.Rows)),
	}
	for i, r := range w.Rows {
		out.Rows[i] = WideRow{ID: r.ID, Values: append([]float64(nil), r.Values...)}
	}
	return out
}
