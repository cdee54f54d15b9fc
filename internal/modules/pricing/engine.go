// Package pricing computes line prices and order totals against the live
// configuration.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/menu"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

// ConfigSource provides the live configuration.
type ConfigSource interface {
	Snapshot() *config.Config
}

// Line is the pricing view of an order line.
type Line struct {
	UnitPrice money.Amount
	Quantity  int
}

// Engine prices catalog items and totals orders. It holds no state of its own;
// every call reads the current configuration snapshot.
type Engine struct {
	configs ConfigSource
}

func NewEngine(configs ConfigSource) *Engine { return &Engine{configs: configs} }

// PriceOf returns the unit price of item with the chosen toppings. Fixed items
// ignore toppings. Customizable items add the live price of each topping and
// fail with *config.UnknownToppingError for a topping not on the price table.
func (e *Engine) PriceOf(item menu.Item, toppings []string) (money.Amount, error) {
	if !item.Customizable {
		return item.Price, nil
	}
	extra, err := e.configs.Snapshot().Pricing.ToppingsTotal(toppings)
	if err != nil {
		return 0, err
	}
	return item.Price + extra, nil
}

// MaxOrderItems is the configured cap on total quantity per order.
func (e *Engine) MaxOrderItems() int {
	return e.configs.Snapshot().Business.MaxOrderItems
}

// Totals sums lines exactly and applies the live tax rate without rounding.
func (e *Engine) Totals(lines []Line) Totals {
	return computeTotals(subtotal(lines), e.configs.Snapshot().Business.TaxRate)
}

func subtotal(lines []Line) money.Amount {
	var sum money.Amount
	for _, l := range lines {
		sum += l.UnitPrice.Times(l.Quantity)
	}
	return sum
}

func computeTotals(sub money.Amount, rate money.Rate) Totals {
	tax := rate.Of(sub)
	return Totals{
		Subtotal: sub,
		Tax:      tax,
		Total:    sub.Decimal().Add(tax),
	}
}

// Totals holds an order's sums. Tax and Total are exact; round them only for
// display.
type Totals struct {
	Subtotal money.Amount
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// DisplayTotals are the rounded strings shown to customers.
type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// Display rounds each figure half away from zero to cents.
func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal: t.Subtotal.Display(),
		Tax:      money.Display(t.Tax),
		Total:    money.Display(t.Total),
	}
}
