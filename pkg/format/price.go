// Package format holds deterministic display formatting for storefront text.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Price renders a price with dot thousands separators and exactly one
// decimal digit, e.g. 10000.0 -> "10.000.0" and 45000.0 -> "45.000.0".
func Price(price decimal.Decimal) string {
	fixed := price.StringFixed(1)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart, decPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	out := b.String() + "." + decPart
	if neg {
		return "-" + out
	}
	return out
}
