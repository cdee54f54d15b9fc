// Package settings turns raw settings-panel input into configuration values.
package settings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the input type of a settings field.
type Kind string

const (
	KindText       Kind = "text"
	KindNumber     Kind = "number"
	KindPercentage Kind = "percentage"
)

// Valid reports whether k is one of the known field kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindNumber, KindPercentage:
		return true
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// Coerce converts the raw field value for storage. Text is stored as typed.
// Numbers that fail to parse become 0, and percentages are divided by 100, so
// "8.5" in a percentage field stores 0.085.
func Coerce(kind Kind, raw string) (interface{}, error) {
	switch kind {
	case KindText, "":
		return raw, nil
	case KindNumber:
		return json.Number(parse(raw).String()), nil
	case KindPercentage:
		return json.Number(parse(raw).Div(hundred).String()), nil
	}
	return nil, fmt.Errorf("unsupported field kind %q", kind)
}

// Present converts a stored value back to what the field shows. Percentages
// are multiplied by 100.
func Present(kind Kind, stored interface{}) string {
	s := fmt.Sprint(stored)
	if kind != KindPercentage {
		return s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.Mul(hundred).String()
}

func parse(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
