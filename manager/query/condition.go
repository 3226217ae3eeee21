package query

import (
	"strings"

	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
)

// FilterCondition matches rows having any field whose string form contains
// the search text, ignoring case. Every field counts, declared or not.
type FilterCondition struct {
	needle string
}

func NewFilterCondition(searchQuery string) FilterCondition {
	return FilterCondition{needle: strings.ToLower(searchQuery)}
}

func (fc FilterCondition) Empty() bool {
	return fc.needle == ""
}

func (fc FilterCondition) Match(row store.Row) bool {
	if fc.Empty() {
		return true
	}

	matched := false
	row.EachValue(func(_ string, v schema.Value) bool {
		if strings.Contains(strings.ToLower(v.String()), fc.needle) {
			matched = true
			return false
		}
		return true
	})

	return matched
}

type SortCondition struct {
	Field string
	Order SortOrder
}
