package manager

import (
	"github.com/dot5enko/simple-table-db/schema"
)

// AddColumn appends a user defined column. On ErrDuplicateColumn or
// ErrEmptyColumnLabel nothing changes.
func (m *Manager) AddColumn(label string, typ schema.FieldType) (schema.Column, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	col, err := m.schema.AddColumn(label, typ)
	if err != nil {
		m.log.Warn("add column rejected", "label", label, "err", err)
		return col, err
	}

	m.log.Info("column added", "column_id", col.Id, "type", col.Type.String())
	return col, nil
}

// ToggleColumnVisibility flips a column's visible flag; unknown ids are ignored.
func (m *Manager) ToggleColumnVisibility(columnId string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.schema.ToggleVisibility(columnId)
}

// ReplaceColumns swaps the whole column set. An active sort on a column that
// disappears is cleared.
func (m *Manager) ReplaceColumns(columns []schema.Column) error {
	check := schema.New("", nil)
	for _, it := range columns {
		if check.Append(it) == 0 {
			return schema.ErrDuplicateColumn
		}
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.schema.ReplaceAll(columns)
	if m.params.SortBy != "" && !m.schema.Has(m.params.SortBy) {
		m.params.SortBy = ""
	}

	return nil
}

func (m *Manager) Columns() []schema.Column {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.schema.Copy()
}

func (m *Manager) VisibleColumns() []schema.Column {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.schema.VisibleColumns()
}

func (m *Manager) Column(columnId string) (schema.Column, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.schema.Get(columnId)
}
