package schema

import "errors"

var (
	// ErrDuplicateColumn is returned when a derived column id already exists.
	ErrDuplicateColumn = errors.New("a column with this name already exists")

	ErrEmptyColumnLabel = errors.New("column name is empty")
)
