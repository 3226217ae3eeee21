// Package session keeps per-row edit drafts. A row id has a draft exactly
// while that row is being edited.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dot5enko/simple-table-db/schema"
	"github.com/dot5enko/simple-table-db/store"
	"golang.org/x/exp/maps"
)

var (
	ErrNoDraft       = errors.New("row is not being edited")
	ErrReadOnlyField = errors.New("field is read only")
)

type EditSession struct {
	drafts map[string]store.Row
}

func New() *EditSession {
	return &EditSession{drafts: map[string]store.Row{}}
}

// Begin snapshots the live row. Calling it again for a row that is already
// being edited takes a fresh snapshot and drops unsaved changes.
func (s *EditSession) Begin(live store.Row) {
	s.drafts[live.Id] = live.Clone()
}

// SetField stores raw into the draft, coerced to the column type.
func (s *EditSession) SetField(rowId string, col schema.Column, raw string) (schema.Value, error) {

	if col.Id == store.IdField {
		return schema.Value{}, fmt.Errorf("field `%s`: %w", col.Id, ErrReadOnlyField)
	}

	draft, ok := s.drafts[rowId]
	if !ok {
		return schema.Value{}, fmt.Errorf("row `%s`: %w", rowId, ErrNoDraft)
	}

	v := schema.CoerceInput(col.Type, raw)
	draft.Set(col.Id, v)

	return v, nil
}

func (s *EditSession) Draft(rowId string) (store.Row, bool) {
	draft, ok := s.drafts[rowId]
	if !ok {
		return store.Row{}, false
	}
	return draft.Clone(), true
}

func (s *EditSession) IsEditing(rowId string) bool {
	_, ok := s.drafts[rowId]
	return ok
}

// Take ends the edit of a row and hands back its draft for committing.
func (s *EditSession) Take(rowId string) (store.Row, bool) {
	draft, ok := s.drafts[rowId]
	if ok {
		delete(s.drafts, rowId)
	}
	return draft, ok
}

func (s *EditSession) Discard(rowId string) bool {
	_, ok := s.drafts[rowId]
	delete(s.drafts, rowId)
	return ok
}

// TakeAll ends every edit and returns the drafts ordered by row id.
func (s *EditSession) TakeAll() []store.Row {
	result := make([]store.Row, 0, len(s.drafts))
	for _, id := range s.EditingIds() {
		result = append(result, s.drafts[id])
	}
	clear(s.drafts)
	return result
}

func (s *EditSession) DiscardAll() int {
	n := len(s.drafts)
	clear(s.drafts)
	return n
}

func (s *EditSession) EditingIds() []string {
	ids := maps.Keys(s.drafts)
	slices.Sort(ids)
	return ids
}

func (s *EditSession) Len() int {
	return len(s.drafts)
}

func (s *EditSession) Evict(rowId string) {
	delete(s.drafts, rowId)
}

func (s *EditSession) Retain(keep func(rowId string) bool) {
	for id := range s.drafts {
		if !keep(id) {
			delete(s.drafts, id)
		}
	}
}
