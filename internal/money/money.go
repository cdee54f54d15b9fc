// Package money holds the currency primitives shared by pricing, the menu and
// the configuration: integer minor-unit amounts and exact decimal rates.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a currency value in minor units (cents).
type Amount int64

// FromDecimal converts a major-unit decimal (9.99) to minor units, rounding
// half away from zero at the cent.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Shift(2).Round(0).IntPart())
}

// Parse reads a major-unit string such as "9.99".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MustParse is Parse for compiled-in constants.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Times multiplies by a quantity.
func (a Amount) Times(qty int) Amount {
	return a * Amount(qty)
}

// String renders the amount with exactly two decimals, without a symbol.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Display renders the amount for a receipt or screen, e.g. "$11.49".
func (a Amount) Display() string {
	return Display(a.Decimal())
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", b, err)
	}
	*a = FromDecimal(d)
	return nil
}

// Display rounds a major-unit decimal to cents for presentation only.
func Display(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
