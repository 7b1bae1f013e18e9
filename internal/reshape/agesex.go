package reshape

import (
	"github.com/gyeh/apptstats/internal/model"
)

// SexKey maps a wide category column of the age/sex table onto its sex and
// maternity flag.
type SexKey struct {
	Sex       string `yaml:"sex"`
	Maternity bool   `yaml:"maternity"`
}

// ToAgeSex splits a long age/sex table into AgeSexRecords. Percentages must
// already be computed, normally with WithGlobalPercentage.
func ToAgeSex(l model.LongTable, sexes map[string]SexKey) ([]model.AgeSexRecord, error) {
	if !l.HasPct {
		return nil, &ComputationError{Op: "age_sex", Reason: "percentages not computed"}
	}

	out := make([]model.AgeSexRecord, 0, len(l.Records))
	for _, r := range l.Records {
		key, ok := sexes[r.Category]
		if !ok {
			return nil, &SchemaError{Op: "age_sex", Name: r.Category, Reason: "category has no sex mapping"}
		}
		out = append(out, model.AgeSexRecord{
			AgeBand:   r.Group,
			Sex:       key.Sex,
			Maternity: key.Maternity,
			Count:     r.Count,
			Pct:       r.Pct,
		})
	}
	return out, nil
}
