package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Money is an amount in minor currency units. All monetary arithmetic in the
// engine is integer arithmetic on this type; floating point is never used, so
// totals cannot drift. The platform operates in a single currency, so Money
// carries no currency code.
//
// Thousands-separator formatting is a pure display transform: Format renders
// separators, ParseMoney strips them. A formatted string must never be parsed
// back without going through ParseMoney.
type Money int64

// thousandsSeparator is the display separator inserted by Format and stripped
// by ParseMoney.
const thousandsSeparator = ","

// ParseMoney parses a user-entered amount. Thousands separators and spaces are
// stripped before parsing, so inputs like "150,000" are accepted. Any other
// non-digit character makes the value invalid.
func ParseMoney(s string) (Money, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), thousandsSeparator, "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, errs.NewValueIsRequiredError("amount")
	}

	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%q is not a whole number of minor currency units", s))
	}
	if value < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%q is negative", s))
	}

	return Money(value), nil
}

// Format renders the amount with thousands separators, e.g. 35000 -> "35,000".
func (m Money) Format() string {
	negative := m < 0
	digits := strconv.FormatInt(int64(m), 10)
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(thousandsSeparator)
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(thousandsSeparator)
		}
	}
	return b.String()
}

// MulQuantity returns the amount multiplied by a line-item quantity.
func (m Money) MulQuantity(quantity int) Money {
	return m * Money(quantity)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}
