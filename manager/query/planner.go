package query

import (
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type QueryPlanner struct {
	locale language.Tag
}

func NewQueryPlanner(locale language.Tag) *QueryPlanner {
	return &QueryPlanner{locale: locale}
}

// Plan resolves params against the current columns. A sort is planned only
// when SortBy names an existing column; sortability is checked by callers
// before params get here.
func (qp *QueryPlanner) Plan(columns []schema.Column, params Params) QueryPlan {

	plan := QueryPlan{
		Filter:  NewFilterCondition(params.SearchQuery),
		Page:    params.Page,
		PerPage: params.RowsPerPage,
	}

	if params.SortBy != "" {
		for _, it := range columns {
			if it.Id == params.SortBy {
				plan.Sort = &SortCondition{Field: it.Id, Order: params.SortOrder}
				break
			}
		}
	}

	return plan
}

// Execute runs filter, sort and paginate over rows. rows is not modified; the
// result shares field maps with it.
func (qp *QueryPlanner) Execute(rows store.Rows, plan QueryPlan) Result {

	matched := make(store.Rows, 0, len(rows))
	for _, it := range rows {
		if plan.Filter.Match(it) {
			matched = append(matched, it)
		}
	}

	if plan.Sort != nil {
		SortRows(matched, *plan.Sort, qp.collator())
	}

	start, end := pageWindow(plan.Page, plan.PerPage, len(matched))

	return Result{
		Rows:  matched[start:end:end],
		Total: len(matched),
	}
}

func (qp *QueryPlanner) Run(rows store.Rows, columns []schema.Column, params Params) Result {
	return qp.Execute(rows, qp.Plan(columns, params))
}

func (qp *QueryPlanner) collator() *collate.Collator {
	return NewCollator(qp.locale)
}
