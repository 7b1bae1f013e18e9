package reshape

import (
	"github.com/gyeh/apptstats/internal/model"
)

// ToLong pivots every value column into (id, category, count) records.
// Records are emitted column by column, each column in source row order.
func ToLong(w model.WideTable, idColumn string) (model.LongTable, error) {
	if idColumn != w.IDColumn {
		return model.LongTable{}, &SchemaError{Op: "to_long", Name: idColumn, Reason: "not the id column of the table"}
	}

	seen := make(map[string]bool, len(w.Rows))
	for _, row := range w.Rows {
		if seen[row.ID] {
			return model.LongTable{}, &SchemaError{Op: "to_long", Name: row.ID, Reason: "duplicate id value"}
		}
		seen[row.ID] = true
		if len(row.Values) != len(w.Columns) {
			return model.LongTable{}, &SchemaError{Op: "to_long", Name: row.ID, Reason: "row width does not match header"}
		}
	}

	recs := make([]model.LongRecord, 0, len(w.Columns)*len(w.Rows))
	for j, col := range w.Columns {
		for _, row := range w.Rows {
			recs = append(recs, model.LongRecord{
				Group:    row.ID,
				Category: col,
				Count:    row.Values[j],
			})
		}
	}
	return model.LongTable{GroupColumn: w.IDColumn, Records: recs}, nil
}

// ToWide is the inverse of ToLong. Groups become rows and categories become
// columns, both in first-appearance order.
func ToWide(l model.LongTable) (model.WideTable, error) {
	groups := l.Groups()
	cats := l.Categories()

	rowIdx := make(map[string]int, len(groups))
	for i, g := range groups {
		rowIdx[g] = i
	}
	colIdx := make(map[string]int, len(cats))
	for i, c := range cats {
		colIdx[c] = i
	}

	out := model.WideTable{
		IDColumn: l.GroupColumn,
		Columns:  cats,
		Rows:     make([]model.WideRow, len(groups)),
	}
	filled := make([][]bool, len(groups))
	for i, g := range groups {
		out.Rows[i] = model.WideRow{ID: g, Values: make([]float64, len(cats))}
		filled[i] = make([]bool, len(cats))
	}

	for _, r := range l.Records {
		i, j := rowIdx[r.Group], colIdx[r.Category]
		if filled[i][j] {
			return model.WideTable{}, &SchemaError{Op: "to_wide", Name: r.Category, Reason: "duplicate record for group " + r.Group}
		}
		filled[i][j] = true
		out.Rows[i].Values[j] = r.Count
	}
	for i, row := range filled {
		for j, ok := range row {
			if !ok {
				return model.WideTable{}, &SchemaError{Op: "to_wide", Name: cats[j], Reason: "missing record for group " + groups[i]}
			}
		}
	}
	return out, nil
}

// DropCategory removes every record whose category equals name.
func DropCategory(l model.LongTable, name string) model.LongTable {
	out := l.Clone()
	out.Records = out.Records[:0]
	for _, r := range l.Records {
		if r.Category != name {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// AssignCategoryOrder attaches levels as the display order of the category
// dimension. See model.LongTable.Order for the stacking convention.
func AssignCategoryOrder(l model.LongTable, categoryColumn string, levels []string) (model.LongTable, error) {
	if categoryColumn != model.ColumnCategory {
		return model.LongTable{}, &SchemaError{Op: "assign_order", Name: categoryColumn, Reason: "not the category column"}
	}

	known := make(map[string]bool, len(levels))
	for _, lv := range levels {
		if known[lv] {
			return model.LongTable{}, &SchemaError{Op: "assign_order", Name: lv, Reason: "level listed twice"}
		}
		known[lv] = true
	}
	for _, c := range l.Categories() {
		if !known[c] {
			return model.LongTable{}, &SchemaError{Op: "assign_order", Name: c, Reason: "category not in ordered levels"}
		}
	}

	out := l.Clone()
	out.Order = append([]string(nil), levels...)
	return out, nil
}
