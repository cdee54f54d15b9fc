package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is an exact fractional rate such as a tax rate (0.085) or a discount
// (0.10). It serialises as a bare JSON number.
type Rate struct {
	decimal.Decimal
}

// NewRate parses a rate from its decimal string form.
func NewRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	return Rate{d}, nil
}

// MustRate is NewRate for compiled-in constants.
func MustRate(s string) Rate {
	r, err := NewRate(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Of applies the rate to an amount, unrounded, in major units.
func (r Rate) Of(a Amount) decimal.Decimal {
	return a.Decimal().Mul(r.Decimal)
}

// Percent renders the rate as a percentage with one decimal, e.g. "8.5%".
func (r Rate) Percent() string {
	return r.Shift(2).StringFixed(1) + "%"
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	return r.Decimal.UnmarshalJSON(b)
}
