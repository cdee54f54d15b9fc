package pricing

import (
	"encoding/json"

	"github.com/georgemunganga/pizza-pos/internal/money"
)

type totalsJSON struct {
	Subtotal money.Amount  `json:"subtotal"`
	Tax      json.Number   `json:"tax"`
	Total    json.Number   `json:"total"`
	Display  DisplayTotals `json:"display"`
}

// MarshalJSON writes exact figures as bare numbers next to their display form.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(totalsJSON{
		Subtotal: t.Subtotal,
		Tax:      json.Number(t.Tax.String()),
		Total:    json.Number(t.Total.String()),
		Display:  t.Display(),
	})
}
