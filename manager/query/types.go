package query

import (
	"github.com/dot5enko/simple-table-db/store"
)

type (
	// Params drive the derived view. SortBy is empty when no sort is applied.
	Params struct {
		SearchQuery string
		SortBy      string
		SortOrder   SortOrder
		Page        int
		RowsPerPage int
	}

	Result struct {
		// Rows of the requested page in display order
		Rows store.Rows

		// Total rows matching the search, before pagination
		Total int
	}

	QueryPlan struct {
		Filter  FilterCondition
		Sort    *SortCondition
		Page    int
		PerPage int
	}
)
