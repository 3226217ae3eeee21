package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateId = errors.New("row id already exists")
	ErrEmptyRowId  = errors.New("row id is empty")
	ErrRowNotFound = errors.New("row not found")
)

// Evictor is told about rows leaving the store so that state attached to them
// (edit drafts) does not outlive the row.
type Evictor interface {
	Evict(rowId string)
	Retain(keep func(rowId string) bool)
}

// RowStore keeps rows in insertion order. It is not safe for concurrent use,
// the owning container serializes access.
type RowStore struct {
	rows  Rows
	index map[string]int

	evictors []Evictor
}

func New(evictors ...Evictor) *RowStore {
	return &RowStore{
		rows:     Rows{},
		index:    map[string]int{},
		evictors: evictors,
	}
}

func (s *RowStore) AddEvictor(e Evictor) {
	s.evictors = append(s.evictors, e)
}

func (s *RowStore) reindex() {
	s.index = make(map[string]int, len(s.rows))
	for idx, it := range s.rows {
		s.index[it.Id] = idx
	}
}

// SetAll replaces every row. The batch must carry unique, non empty ids.
func (s *RowStore) SetAll(rows Rows) error {

	seen := make(map[string]struct{}, len(rows))
	for _, it := range rows {
		if strings.TrimSpace(it.Id) == "" {
			return ErrEmptyRowId
		}
		if _, dup := seen[it.Id]; dup {
			return fmt.Errorf("row `%s`: %w", it.Id, ErrDuplicateId)
		}
		seen[it.Id] = struct{}{}
	}

	s.rows = rows.Clone()
	s.reindex()

	for _, e := range s.evictors {
		e.Retain(func(rowId string) bool {
			_, ok := seen[rowId]
			return ok
		})
	}

	return nil
}

func (s *RowStore) Insert(row Row) error {
	if strings.TrimSpace(row.Id) == "" {
		return ErrEmptyRowId
	}

	if _, exists := s.index[row.Id]; exists {
		return fmt.Errorf("row `%s`: %w", row.Id, ErrDuplicateId)
	}

	s.rows = append(s.rows, row.Clone())
	s.index[row.Id] = len(s.rows) - 1

	return nil
}

// Update replaces the row with the same id in place. Unknown ids are ignored.
func (s *RowStore) Update(row Row) bool {
	idx, ok := s.index[row.Id]
	if !ok {
		return false
	}

	s.rows[idx] = row.Clone()
	return true
}

// Delete removes the row and evicts anything attached to it. Unknown ids are ignored.
func (s *RowStore) Delete(id string) bool {
	idx, ok := s.index[id]
	if !ok {
		return false
	}

	s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	s.reindex()

	for _, e := range s.evictors {
		e.Evict(id)
	}

	return true
}

func (s *RowStore) IndexOf(id string) int {
	idx, ok := s.index[id]
	if !ok {
		return -1
	}
	return idx
}

func (s *RowStore) Get(id string) (Row, bool) {
	idx, ok := s.index[id]
	if !ok {
		return Row{}, false
	}
	return s.rows[idx].Clone(), true
}

func (s *RowStore) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Rows returns a deep copy in store order.
func (s *RowStore) Rows() Rows {
	return s.rows.Clone()
}

// View exposes the live rows for read only derivations without copying.
// Callers must not modify the result.
func (s *RowStore) View() Rows {
	return s.rows
}

func (s *RowStore) Ids() []string {
	ids := make([]string, len(s.rows))
	for i, it := range s.rows {
		ids[i] = it.Id
	}
	return ids
}

func (s *RowStore) Len() int {
	return len(s.rows)
}
