package manager

import (
	"errors"

	tableio "github.com/dot5enko/simple-table-db/io"
	"github.com/dot5enko/simple-table-db/schema"
)

var (
	ErrColumnNotFound     = errors.New("column not found")
	ErrColumnNotSortable  = errors.New("column is not sortable")
	ErrInvalidRowsPerPage = errors.New("rows per page is not one of the allowed options")
	ErrInvalidPage        = errors.New("page must not be negative")
	ErrInvalidSortOrder   = errors.New("unknown sort order")

	// ErrEmptyDataset is returned when an imported file has no data rows.
	ErrEmptyDataset = errors.New("the CSV file is empty")

	// ErrStaleImport marks the result of a file selection that was superseded
	// by a newer one. Its data is dropped.
	ErrStaleImport = errors.New("import superseded by a newer file selection")

	ErrReadFile = errors.New("error reading file")
)

// UserMessage turns an error returned by a command into the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var parseErr *tableio.ParseError

	switch {
	case errors.Is(err, schema.ErrDuplicateColumn):
		return "A column with this name already exists"
	case errors.Is(err, ErrEmptyDataset):
		return "The CSV file is empty"
	case errors.As(err, &parseErr):
		return "Parse error: " + parseErr.Message
	default:
		return err.Error()
	}
}
