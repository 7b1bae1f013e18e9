package model

// Fixed column names of a LongTable. The group column is named after the
// wide table's id column (e.g. "Year").
const (
	ColumnCategory = "Category"
	ColumnCount    = "Count"
	ColumnPct      = "Pct"
)

// LongRecord is one (group, category) observation.
type LongRecord struct {
	Group    string  `parquet:"group"`
	Category string  `parquet:"category"`
	Count    float64 `parquet:"count"`
	Pct      float64 `parquet:"pct"`
}

// LongTable is the tidy form handed to the presenter.
type LongTable struct {
	// GroupColumn is the name of the group identifier (the wide id column).
	GroupColumn string
	Records     []LongRecord
	// Order is the display order of categories. The first level is drawn at
	// the top of a stacked bar (stacked last) and listed first in the legend;
	// the last level sits on the axis. Empty until an order is assigned.
	Order []string
	// HasPct reports whether Pct has been computed.
	HasPct bool
}

// Groups returns the distinct group labels in first-appearance order.
func (l LongTable) Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range l.Records {
		if !seen[r.Group] {
			seen[r.Group] = true
			out = append(out, r.Group)
		}
	}
	return out
}

// Categories returns the distinct categories in first-appearance order.
func (l LongTable) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range l.Records {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}

// Rank returns the position of category in Order, or -1 if unordered.
func (l LongTable) Rank(category string) int {
	for i, c := range l.Order {
		if c == category {
			return i
		}
	}
	return -1
}

// Clone returns a copy sharing no slices with the receiver.
func (l LongTable) Clone() LongTable {
	return LongTable{
		GroupColumn: l.GroupColumn,
		Records:     append([]LongRecord(nil), l.Records...),
		Order:       append([]string(nil), l.Order...),
		HasPct:      l.HasPct,
	}
}
