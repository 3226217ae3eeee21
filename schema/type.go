package schema

import (
	"fmt"
	"strings"
)

type FieldType uint8

const (
	TextFieldType FieldType = iota
	NumberFieldType
)

func (f FieldType) String() string {
	switch f {
	case TextFieldType:
		return "string"
	case NumberFieldType:
		return "number"
	default:
		return ""
	}
}

// ParseFieldType accepts the names used by column definitions and the add column form.
func ParseFieldType(name string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "text", "":
		return TextFieldType, nil
	case "number", "numeric":
		return NumberFieldType, nil
	default:
		return TextFieldType, fmt.Errorf("unknown field type `%s`", name)
	}
}

func (f FieldType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *FieldType) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
