package io

import (
	goio "io"
	"strings"
)

// EscapeCell quotes a value containing a comma or a double quote and doubles
// inner quotes. Anything else is written as is.
func EscapeCell(value string) string {
	if !strings.ContainsAny(value, ",\"") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// WriteCSV writes the header and lines joined by "\n", without a trailing newline.
func WriteCSV(w goio.Writer, header []string, lines [][]string) error {

	var sb strings.Builder

	writeLine := func(cells []string) {
		for idx, it := range cells {
			if idx > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(EscapeCell(it))
		}
	}

	writeLine(header)
	for _, it := range lines {
		sb.WriteByte('\n')
		writeLine(it)
	}

	_, err := goio.WriteString(w, sb.String())
	return err
}
