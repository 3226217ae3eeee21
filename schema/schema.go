package schema

import (
	"fmt"
	"strings"
)

// Schema is the ordered column set of one table. Order is insertion order and
// never changes on visibility toggles.
type Schema struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

func New(name string, columns []Column) *Schema {
	s := &Schema{Name: name}
	s.ReplaceAll(columns)
	return s
}

func (s *Schema) indexOf(id string) int {
	for idx, it := range s.Columns {
		if it.Id == id {
			return idx
		}
	}
	return -1
}

func (s *Schema) Has(id string) bool {
	return s.indexOf(id) >= 0
}

func (s *Schema) Get(id string) (Column, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Column{}, false
	}
	return s.Columns[idx], true
}

// AddColumn appends a visible, sortable column whose id is derived from label.
func (s *Schema) AddColumn(label string, typ FieldType) (Column, error) {

	if strings.TrimSpace(label) == "" {
		return Column{}, ErrEmptyColumnLabel
	}

	id := DeriveColumnId(label)

	if s.Has(id) {
		return Column{}, fmt.Errorf("column `%s`: %w", id, ErrDuplicateColumn)
	}

	col := NewColumn(id, label, typ)
	s.Columns = append(s.Columns, col)

	return col, nil
}

// ToggleVisibility flips the visible flag. Unknown ids are ignored and reported as false.
func (s *Schema) ToggleVisibility(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	s.Columns[idx].Visible = !s.Columns[idx].Visible
	return true
}

func (s *Schema) ReplaceAll(columns []Column) {
	s.Columns = append([]Column{}, columns...)
}

// Append adds already built columns, skipping ids that are present.
func (s *Schema) Append(columns ...Column) int {
	added := 0
	for _, col := range columns {
		if s.Has(col.Id) {
			continue
		}
		s.Columns = append(s.Columns, col)
		added++
	}
	return added
}

func (s *Schema) Copy() []Column {
	return append([]Column{}, s.Columns...)
}

func (s *Schema) VisibleColumns() []Column {
	result := []Column{}
	for _, it := range s.Columns {
		if it.Visible {
			result = append(result, it)
		}
	}
	return result
}
