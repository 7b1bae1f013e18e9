package present

import (
	"fmt"

	"github.com/gyeh/apptstats/internal/model"
)

// series is a long table laid out for stacking.
type series struct {
	groups []string
	// levels in display order: levels[0] is the top of the stack.
	levels []string
	// values[level][group]
	values [][]float64
	recs   [][]model.LongRecord
}

func buildSeries(l model.LongTable, m Measure) (*series, error) {
	if len(l.Records) == 0 {
		return nil, fmt.Errorf("no records to plot")
	}
	if m == MeasurePct && !l.HasPct {
		return nil, fmt.Errorf("percentages not computed")
	}

	s := &series{groups: l.Groups(), levels: l.Order}
	if len(s.levels) == 0 {
		s.levels = l.Categories()
	}

	gi := make(map[string]int, len(s.groups))
	for i, g := range s.groups {
		gi[g] = i
	}
	li := make(map[string]int, len(s.levels))
	for i, c := range s.levels {
		li[c] = i
	}

	s.values = make([][]float64, len(s.levels))
	s.recs = make([][]model.LongRecord, len(s.levels))
	for i := range s.levels {
		s.values[i] = make([]float64, len(s.groups))
		s.recs[i] = make([]model.LongRecord, len(s.groups))
	}
	for _, r := range l.Records {
		lv, ok := li[r.Category]
		if !ok {
			return nil, fmt.Errorf("category %q not in display order", r.Category)
		}
		v := r.Count
		if m == MeasurePct {
			v = r.Pct
		}
		s.values[lv][gi[r.Group]] = v
		s.recs[lv][gi[r.Group]] = r
	}
	return s, nil
}

// peak returns the height of the tallest stack.
func (s *series) peak() float64 {
	var top float64
	for g := range s.groups {
		var sum float64
		for lv := range s.levels {
			sum += s.values[lv][g]
		}
		if sum > top {
			top = sum
		}
	}
	return top
}

func yLabel(m Measure) string {
	if m == MeasurePct {
		return "Share of appointments (%)"
	}
	return "Appointments"
}
