// Package reshape turns loaded wide tables into long-form records with
// derived percentages. Every function is pure: inputs are never modified and
// a failure returns no partial table.
package reshape

import (
	"sort"

	"github.com/gyeh/apptstats/internal/model"
)

// MergeRule replaces Sources with a single Target column holding their sum.
type MergeRule struct {
	Target  string   `yaml:"target"`
	Sources []string `yaml:"sources"`
}

// CombineCategories applies rules in order. The derived column takes the
// position of the rule's first source column.
func CombineCategories(w model.WideTable, rules []MergeRule) (model.WideTable, error) {
	if err := checkWidth("combine", w); err != nil {
		return model.WideTable{}, err
	}
	out := w.Clone()
	for _, rule := range rules {
		if len(rule.Sources) == 0 {
			return model.WideTable{}, &SchemaError{Op: "combine", Rule: rule.Target, Name: rule.Target, Reason: "rule has no source columns"}
		}

		idx := make([]int, len(rule.Sources))
		drop := make(map[int]bool, len(rule.Sources))
		for i, src := range rule.Sources {
			j := out.ColumnIndex(src)
			if j < 0 {
				return model.WideTable{}, &SchemaError{Op: "combine", Rule: rule.Target, Name: src, Reason: "source column not found"}
			}
			if drop[j] {
				return model.WideTable{}, &SchemaError{Op: "combine", Rule: rule.Target, Name: src, Reason: "source column listed twice"}
			}
			idx[i] = j
			drop[j] = true
		}
		if j := out.ColumnIndex(rule.Target); j >= 0 && !drop[j] {
			return model.WideTable{}, &SchemaError{Op: "combine", Rule: rule.Target, Name: rule.Target, Reason: "target column already exists"}
		}

		at := idx[0]
		cols := make([]string, 0, len(out.Columns)-len(idx)+1)
		for j, c := range out.Columns {
			switch {
			case j == at:
				cols = append(cols, rule.Target)
			case !drop[j]:
				cols = append(cols, c)
			}
		}

		rows := make([]model.WideRow, len(out.Rows))
		for r, row := range out.Rows {
			var sum float64
			for _, j := range idx {
				sum += row.Values[j]
			}
			vals := make([]float64, 0, len(cols))
			for j, v := range row.Values {
				switch {
				case j == at:
					vals = append(vals, sum)
				case !drop[j]:
					vals = append(vals, v)
				}
			}
			rows[r] = model.WideRow{ID: row.ID, Values: vals}
		}
		out.Columns = cols
		out.Rows = rows
	}
	return out, nil
}

// RenameCategories renames value columns per renames (old name → new name).
func RenameCategories(w model.WideTable, renames map[string]string) (model.WideTable, error) {
	if err := checkWidth("rename", w); err != nil {
		return model.WideTable{}, err
	}
	out := w.Clone()

	froms := make([]string, 0, len(renames))
	for from := range renames {
		froms = append(froms, from)
	}
	sort.Strings(froms)
	for _, from := range froms {
		if out.ColumnIndex(from) < 0 {
			return model.WideTable{}, &SchemaError{Op: "rename", Name: from, Reason: "column not found"}
		}
	}

	seen := make(map[string]bool, len(out.Columns))
	for i, c := range out.Columns {
		if to, ok := renames[c]; ok {
			c = to
		}
		if seen[c] || c == out.IDColumn {
			return model.WideTable{}, &SchemaError{Op: "rename", Name: c, Reason: "duplicate column after rename"}
		}
		seen[c] = true
		out.Columns[i] = c
	}
	return out, nil
}

// checkWidth fails when a row does not have one value per column.
func checkWidth(op string, w model.WideTable) error {
	for _, row := range w.Rows {
		if len(row.Values) != len(w.Columns) {
			return &SchemaError{Op: op, Name: row.ID, Reason: "row width does not match header"}
		}
	}
	return nil
}
