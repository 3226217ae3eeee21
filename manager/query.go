package manager

import (
	"fmt"
	"slices"

	"github.com/dot5enko/simple-table-db/manager/query"
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
)

type (
	// ViewRow is a displayed row. While a row is edited its draft is shown.
	ViewRow struct {
		Row     store.Row
		Editing bool
	}

	TableView struct {
		Columns []schema.Column
		Rows    []ViewRow

		Total       int
		Page        int
		RowsPerPage int
		PageCount   int

		SortBy    string
		SortOrder query.SortOrder
	}
)

// SetSearchQuery changes the search text and goes back to the first page.
func (m *Manager) SetSearchQuery(q string) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.params.SearchQuery = q
	m.params.Page = 0
}

// sortableColumn must be called with the lock held.
func (m *Manager) sortableColumn(columnId string) error {
	col, ok := m.schema.Get(columnId)
	if !ok {
		return fmt.Errorf("column `%s`: %w", columnId, ErrColumnNotFound)
	}
	if !col.Sortable {
		return fmt.Errorf("column `%s`: %w", columnId, ErrColumnNotSortable)
	}
	return nil
}

// SetSort sorts by a sortable column. The current page is kept.
func (m *Manager) SetSort(columnId string, order query.SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("%d: %w", byte(order), ErrInvalidSortOrder)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.sortableColumn(columnId); err != nil {
		return err
	}

	m.params.SortBy = columnId
	m.params.SortOrder = order
	return nil
}

// ToggleSort mimics a click on a column header: the sorted column flips its
// order, any other column starts ascending.
func (m *Manager) ToggleSort(columnId string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.sortableColumn(columnId); err != nil {
		return err
	}

	if m.params.SortBy == columnId {
		m.params.SortOrder = m.params.SortOrder.Reverse()
	} else {
		m.params.SortBy = columnId
		m.params.SortOrder = query.ASC
	}
	return nil
}

func (m *Manager) ClearSort() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.params.SortBy = ""
	m.params.SortOrder = query.ASC
}

// SetPage moves to a zero based page. Pages past the end are allowed and show nothing.
func (m *Manager) SetPage(page int) error {
	if page < 0 {
		return fmt.Errorf("page %d: %w", page, ErrInvalidPage)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.params.Page = page
	return nil
}

// SetRowsPerPage accepts one of the configured options and goes back to the first page.
func (m *Manager) SetRowsPerPage(n int) error {
	if !slices.Contains(m.config.RowsPerPageOptions, n) {
		return fmt.Errorf("%d: %w", n, ErrInvalidRowsPerPage)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.params.RowsPerPage = n
	m.params.Page = 0
	return nil
}

func (m *Manager) Params() query.Params {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.params
}

// Query runs the view pipeline on the live rows with the current parameters.
func (m *Manager) Query() query.Result {
	m.lock.RLock()
	defer m.lock.RUnlock()

	res := m.Planner.Run(m.rows.View(), m.schema.Columns, m.params)
	res.Rows = res.Rows.Clone()
	return res
}

// View is what the table shows: visible columns and the current page, with
// drafts in place of rows being edited.
func (m *Manager) View() TableView {
	m.lock.RLock()
	defer m.lock.RUnlock()

	res := m.Planner.Run(m.rows.View(), m.schema.Columns, m.params)

	view := TableView{
		Columns:     m.schema.VisibleColumns(),
		Rows:        make([]ViewRow, 0, len(res.Rows)),
		Total:       res.Total,
		Page:        m.params.Page,
		RowsPerPage: m.params.RowsPerPage,
		PageCount:   query.PageCount(res.Total, m.params.RowsPerPage),
		SortBy:      m.params.SortBy,
		SortOrder:   m.params.SortOrder,
	}

	for _, it := range res.Rows {
		if draft, editing := m.edits.Draft(it.Id); editing {
			view.Rows = append(view.Rows, ViewRow{Row: draft, Editing: true})
		} else {
			view.Rows = append(view.Rows, ViewRow{Row: it.Clone()})
		}
	}

	return view
}
