package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns the locale aware string comparator used for text sorts.
// A collator is not safe for concurrent use, build one per execution.
func NewCollator(locale language.Tag) *collate.Collator {
	return collate.New(locale)
}

// CompareValues orders two cells: numerically when both are numbers, by
// collation of their lowercase string forms otherwise.
func CompareValues(a, b schema.Value, collator *collate.Collator) int {
	if a.IsNumber() && b.IsNumber() {
		return cmp.Compare(a.Number, b.Number)
	}

	return collator.CompareString(strings.ToLower(a.String()), strings.ToLower(b.String()))
}

// SortRows sorts in place and keeps the relative order of ties. A row missing
// the field compares equal to anything.
func SortRows(rows store.Rows, cond SortCondition, collator *collate.Collator) {

	slices.SortStableFunc(rows, func(a, b store.Row) int {
		av, aok := a.Field(cond.Field)
		bv, bok := b.Field(cond.Field)

		if !aok || !bok {
			return 0
		}

		if cond.Order == DESC {
			return CompareValues(bv, av, collator)
		}
		return CompareValues(av, bv, collator)
	})
}
