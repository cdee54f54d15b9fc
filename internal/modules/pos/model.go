package pos

import (
	"errors"

	"github.com/georgemunganga/pizza-pos/internal/modules/order"
	"github.com/georgemunganga/pizza-pos/internal/modules/pricing"
)

// ErrItemNotFound is returned when a catalog id is not on the current menu,
// either because it never existed or because derivation excluded it.
var ErrItemNotFound = errors.New("menu item not found")

// OrderView is the terminal's current order as shown to the cashier.
type OrderView struct {
	State  order.State    `json:"state"`
	Lines  []order.Line   `json:"lines"`
	Totals pricing.Totals `json:"totals"`
}

// AddItemRequest adds one unit of a catalog item.
type AddItemRequest struct {
	ItemID   string   `json:"itemId"`
	Toppings []string `json:"toppings,omitempty"`
}

// QuantityRequest changes a line's quantity by Delta.
type QuantityRequest struct {
	Delta int `json:"delta"`
}

// CompleteRequest finishes the current order.
type CompleteRequest struct {
	Customer order.CustomerInfo `json:"customerInfo"`
}
