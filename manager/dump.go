package manager

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/simple-table-db/manager/query"
	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
)

type stateSnapshot struct {
	Columns []schema.Column
	Rows    store.Rows
	Drafts  store.Rows
	Params  query.Params
}

// Dump writes the whole state for debugging.
func (m *Manager) Dump(w io.Writer) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	snapshot := stateSnapshot{
		Columns: m.schema.Copy(),
		Rows:    m.rows.Rows(),
		Params:  m.params,
	}
	for _, id := range m.edits.EditingIds() {
		draft, _ := m.edits.Draft(id)
		snapshot.Drafts = append(snapshot.Drafts, draft)
	}

	cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
	cfg.Fdump(w, snapshot)
}
