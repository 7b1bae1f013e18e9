package reshape

import (
	"github.com/gyeh/apptstats/internal/model"
)

// WithGroupPercentage sets Pct = 100 * Count / denominator count of the same
// group. Denominator records get 100. A group with no denominator record, or
// with a zero denominator, fails the whole call.
func WithGroupPercentage(l model.LongTable, groupKey, denominator string) (model.LongTable, error) {
	if groupKey != l.GroupColumn {
		return model.LongTable{}, &SchemaError{Op: "group_pct", Name: groupKey, Reason: "not the group column"}
	}

	denoms := make(map[string]float64)
	for _, r := range l.Records {
		if r.Category == denominator {
			if _, dup := denoms[r.Group]; dup {
				return model.LongTable{}, &ComputationError{Op: "group_pct", Group: r.Group, Reason: "denominator " + denominator + " appears more than once"}
			}
			denoms[r.Group] = r.Count
		}
	}

	for _, g := range l.Groups() {
		d, ok := denoms[g]
		if !ok {
			return model.LongTable{}, &ComputationError{Op: "group_pct", Group: g, Reason: "denominator " + denominator + " missing"}
		}
		if d == 0 {
			return model.LongTable{}, &ComputationError{Op: "group_pct", Group: g, Reason: "denominator " + denominator + " is zero"}
		}
	}

	out := l.Clone()
	for i, r := range out.Records {
		out.Records[i].Pct = 100 * r.Count / denoms[r.Group]
	}
	out.HasPct = true
	return out, nil
}

// WithGlobalPercentage sets Pct = 100 * Count / sum of Count over all records.
func WithGlobalPercentage(l model.LongTable, valueColumn string) (model.LongTable, error) {
	if valueColumn != model.ColumnCount {
		return model.LongTable{}, &SchemaError{Op: "global_pct", Name: valueColumn, Reason: "not a numeric value column"}
	}

	var total float64
	for _, r := range l.Records {
		total += r.Count
	}
	if total == 0 {
		return model.LongTable{}, &ComputationError{Op: "global_pct", Reason: "grand total is zero"}
	}

	out := l.Clone()
	for i, r := range out.Records {
		out.Records[i].Pct = 100 * r.Count / total
	}
	out.HasPct = true
	return out, nil
}
