package manager

import (
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
)

// AddRow appends a row with a fresh id. Raw values are coerced to the type of
// their column; keys without a column are kept as text.
func (m *Manager) AddRow(values map[string]string) (store.Row, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	row := store.NewRow(newRowId(), nil)
	for key, raw := range values {
		if key == store.IdField {
			continue
		}
		row.Set(key, m.coerce(key, raw))
	}

	if err := m.rows.Insert(row); err != nil {
		return store.Row{}, err
	}

	return row.Clone(), nil
}

func (m *Manager) InsertRow(row store.Row) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.rows.Insert(row)
}

// UpdateRow replaces the row with the same id in place; unknown ids are ignored.
func (m *Manager) UpdateRow(row store.Row) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.rows.Update(row)
}

// DeleteRow removes a row together with its edit draft, if any.
func (m *Manager) DeleteRow(rowId string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	wasEditing := m.edits.IsEditing(rowId)

	deleted := m.rows.Delete(rowId)
	if deleted {
		m.log.Info("row deleted", "row_id", rowId, "draft_evicted", wasEditing)
	}

	return deleted
}

func (m *Manager) Row(rowId string) (store.Row, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.rows.Get(rowId)
}

// Rows returns every row in store order, ignoring search, sort and pages.
func (m *Manager) Rows() store.Rows {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.rows.Rows()
}

func (m *Manager) RowCount() int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.rows.Len()
}

// coerce must be called with the lock held.
func (m *Manager) coerce(columnId, raw string) schema.Value {
	col, ok := m.schema.Get(columnId)
	if !ok {
		return schema.Text(raw)
	}
	return schema.CoerceInput(col.Type, raw)
}
