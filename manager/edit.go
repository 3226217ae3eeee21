package manager

import (
	"fmt"

	"github.com/dot5enko/simple-table-db/manager/session"
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
)

// BeginEdit puts a row into edit mode with a snapshot of its current values.
// Calling it on a row that is already being edited drops unsaved changes.
func (m *Manager) BeginEdit(rowId string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	live, ok := m.rows.Get(rowId)
	if !ok {
		return fmt.Errorf("row `%s`: %w", rowId, store.ErrRowNotFound)
	}

	m.edits.Begin(live)
	return nil
}

// SetDraftField stores raw into the row's draft, coerced to the column type.
// Fields without a column are stored as text.
func (m *Manager) SetDraftField(rowId, columnId, raw string) (schema.Value, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	col, ok := m.schema.Get(columnId)
	if !ok {
		col = schema.Column{Id: columnId, Type: schema.TextFieldType}
	}

	return m.edits.SetField(rowId, col, raw)
}

// CommitEdit writes the draft over the live row at its position and ends the edit.
func (m *Manager) CommitEdit(rowId string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	draft, ok := m.edits.Take(rowId)
	if !ok {
		return fmt.Errorf("row `%s`: %w", rowId, session.ErrNoDraft)
	}

	m.rows.Update(draft)
	return nil
}

func (m *Manager) DiscardEdit(rowId string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if !m.edits.Discard(rowId) {
		return fmt.Errorf("row `%s`: %w", rowId, session.ErrNoDraft)
	}
	return nil
}

// CommitAllEdits commits every open draft and returns how many were written.
func (m *Manager) CommitAllEdits() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	committed := 0
	for _, draft := range m.edits.TakeAll() {
		if m.rows.Update(draft) {
			committed++
		}
	}

	if committed > 0 {
		m.log.Info("edits committed", "rows", committed)
	}

	return committed
}

func (m *Manager) DiscardAllEdits() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.edits.DiscardAll()
}

func (m *Manager) Draft(rowId string) (store.Row, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.edits.Draft(rowId)
}

func (m *Manager) IsEditing(rowId string) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.edits.IsEditing(rowId)
}

func (m *Manager) EditingRows() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.edits.EditingIds()
}
