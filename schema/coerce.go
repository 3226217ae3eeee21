package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingNumber = regexp.MustCompile(`^[+-]?(?:Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)
	decimalNumber = regexp.MustCompile(`^[+-]?(?:Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)$`)
	prefixedInt   = regexp.MustCompile(`^0(?:[xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

func parseDecimal(literal string) float64 {
	unsigned := strings.TrimLeft(literal, "+-")
	if unsigned == "Infinity" {
		if strings.HasPrefix(literal, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	// out of range literals come back as +-Inf together with ErrRange
	n, _ := strconv.ParseFloat(literal, 64)
	return n
}

// ParseLeadingNumber parses the longest numeric prefix of s after leading
// whitespace ("12px" -> 12). ok is false when s does not start with a number.
func ParseLeadingNumber(s string) (n float64, ok bool) {
	literal := leadingNumber.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if literal == "" {
		return 0, false
	}
	return parseDecimal(literal), true
}

// ParseNumber accepts s only if the whole trimmed text is a numeric literal,
// including 0x / 0o / 0b integers.
func ParseNumber(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}

	if decimalNumber.MatchString(trimmed) {
		return parseDecimal(trimmed), true
	}

	if prefixedInt.MatchString(trimmed) {
		n, err := strconv.ParseUint(strings.ToLower(trimmed), 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}

	return 0, false
}

// CoerceInput converts a raw edit into a value for a column of type typ.
// Number columns never reject input: unparsable text becomes 0.
func CoerceInput(typ FieldType, raw string) Value {
	if typ != NumberFieldType {
		return Text(raw)
	}

	n, ok := ParseLeadingNumber(raw)
	if !ok {
		return Number(0)
	}
	return Number(n)
}

// CoerceImported converts a csv cell: numeric text becomes a number, anything
// else is stored as trimmed text.
func CoerceImported(raw string) Value {
	if n, ok := ParseNumber(raw); ok {
		return Number(n)
	}
	return Text(strings.TrimSpace(raw))
}
