package jsonschema

import (
	"fmt"
	"math/big"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Rat wraps a big.Rat so numeric keywords (multipleOf, maximum, minimum and
// their exclusive companions) compare JSON numbers with exact rational
// arithmetic instead of floating-point modulo.
type Rat struct {
	*big.Rat
}

// NewRat converts a decoded JSON number (or numeric Go literal) into a Rat.
// The bool result is false when the value is not numeric.
func NewRat(value any) (*Rat, bool) {
	str, ok := numericLiteral(value)
	if !ok {
		return nil, false
	}
	r := new(big.Rat)
	if _, ok := r.SetString(str); !ok {
		return nil, false
	}
	return &Rat{r}, true
}

func numericLiteral(data any) (string, bool) {
	switch v := data.(type) {
	case gojson.Number:
		return string(v), true
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// IsMultipleOf reports whether r is an integer multiple of divisor, using
// exact rational division rather than the epsilon-tolerant floating point
// comparison the distilled spec suggests as a fallback (see DESIGN.md).
func (r *Rat) IsMultipleOf(divisor *Rat) bool {
	if divisor.Sign() == 0 {
		return false
	}
	quotient := new(big.Rat).Quo(r.Rat, divisor.Rat)
	return quotient.IsInt()
}

// FormatRat renders a Rat the way a JSON number literal would look, trimming
// unneeded fractional precision.
func FormatRat(r *Rat) string {
	if r == nil {
		return "null"
	}
	if r.IsInt() {
		return r.Num().String()
	}
	dec := r.FloatString(10)
	trimmed := strings.TrimRight(dec, "0")
	trimmed = strings.TrimRight(trimmed, ".")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
