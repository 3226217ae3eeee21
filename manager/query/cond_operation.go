package query

import "fmt"

type SortOrder byte

const (
	ASC SortOrder = iota
	DESC
)

func (o SortOrder) String() string {
	switch o {
	case ASC:
		return "asc"
	case DESC:
		return "desc"
	default:
		panic(fmt.Sprintf("unknown sort order %v", byte(o)))
	}
}

func (o SortOrder) Valid() bool {
	return o == ASC || o == DESC
}

func (o SortOrder) Reverse() SortOrder {
	if o == ASC {
		return DESC
	}
	return ASC
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "asc", "ASC", "":
		return ASC, nil
	case "desc", "DESC":
		return DESC, nil
	default:
		return ASC, fmt.Errorf("unknown sort order `%s`", s)
	}
}
