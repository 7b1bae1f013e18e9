package reshape

import (
	"fmt"

	"github.com/gyeh/apptstats/internal/model"
)

// Base selects which percentage operation a Recipe applies.
type Base string

const (
	// BaseGroup divides by the Denominator category of each group.
	BaseGroup Base = "group"
	// BaseGlobal divides by the grand total of all records.
	BaseGlobal Base = "global"
)

// Recipe is the full reshape applied to one loaded table:
// combine → rename → to_long → percentage and drop → order.
type Recipe struct {
	IDColumn    string
	Merge       []MergeRule
	Rename      map[string]string
	Base        Base
	Denominator string
	Drop        []string
	Order       []string
}

// Apply runs the recipe against w.
func (r Recipe) Apply(w model.WideTable) (model.LongTable, error) {
	w, err := CombineCategories(w, r.Merge)
	if err != nil {
		return model.LongTable{}, err
	}
	if len(r.Rename) > 0 {
		if w, err = RenameCategories(w, r.Rename); err != nil {
			return model.LongTable{}, err
		}
	}

	l, err := ToLong(w, r.IDColumn)
	if err != nil {
		return model.LongTable{}, err
	}

	// A group base needs its denominator rows until the percentages exist;
	// a global base must not count dropped rows in the grand total.
	switch r.Base {
	case BaseGroup:
		if l, err = WithGroupPercentage(l, l.GroupColumn, r.Denominator); err != nil {
			return model.LongTable{}, err
		}
		l = r.drop(l)
	case BaseGlobal:
		if l, err = WithGlobalPercentage(r.drop(l), model.ColumnCount); err != nil {
			return model.LongTable{}, err
		}
	default:
		return model.LongTable{}, fmt.Errorf("unknown percentage base %q", r.Base)
	}

	if len(r.Order) > 0 {
		if l, err = AssignCategoryOrder(l, model.ColumnCategory, r.Order); err != nil {
			return model.LongTable{}, err
		}
	}
	return l, nil
}

func (r Recipe) drop(l model.LongTable) model.LongTable {
	for _, name := range r.Drop {
		l = DropCategory(l, name)
	}
	return l
}
