package schema

import (
	"regexp"
	"strings"
)

type Column struct {
	Id       string    `json:"id"`
	Label    string    `json:"label"`
	Visible  bool      `json:"visible"`
	Sortable bool      `json:"sortable"`
	Type     FieldType `json:"type"`
}

func NewColumn(id, label string, typ FieldType) Column {
	return Column{
		Id:       id,
		Label:    label,
		Visible:  true,
		Sortable: true,
		Type:     typ,
	}
}

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// DeriveColumnId builds the id of a user added column: "Start Date" -> "start_date".
func DeriveColumnId(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(label), "_")
}

// ImportedColumnId builds the id of a column inferred from a csv header.
func ImportedColumnId(header string) string {
	return strings.ToLower(header)
}
