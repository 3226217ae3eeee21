package schema

import (
	"math"
	"strconv"
	"strings"
)

type ValueKind uint8

const (
	TextValueKind ValueKind = iota
	NumberValueKind
)

// Value is a single cell: either text or a number.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
}

func Text(s string) Value {
	return Value{Kind: TextValueKind, Text: s}
}

func Number(n float64) Value {
	return Value{Kind: NumberValueKind, Number: n}
}

func (v Value) IsNumber() bool {
	return v.Kind == NumberValueKind
}

// String is the form used by search and export.
func (v Value) String() string {
	if v.Kind == NumberValueKind {
		return FormatNumber(v.Number)
	}
	return v.Text
}

func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	if v.Kind == NumberValueKind {
		return v.Number == other.Number || (math.IsNaN(v.Number) && math.IsNaN(other.Number))
	}
	return v.Text == other.Text
}

// FormatNumber renders the shortest decimal form, switching to exponent
// notation for very large or very small magnitudes.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}

	if n == 0 {
		return "0"
	}

	abs := math.Abs(n)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	formatted := strconv.FormatFloat(n, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(formatted, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}
