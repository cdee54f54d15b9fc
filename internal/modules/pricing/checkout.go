package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/georgemunganga/pizza-pos/internal/money"
)

// UnknownZoneError reports a delivery zone missing from the configuration.
type UnknownZoneError struct {
	Zone string
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("unknown delivery zone %q", e.Zone)
}

// Options select the adjustments applied at checkout.
type Options struct {
	Delivery bool   `json:"delivery"`
	Zone     string `json:"zone,omitempty"`
	Rush     bool   `json:"rush"`
	Loyalty  bool   `json:"loyalty"`
}

// Tip is one suggested gratuity.
type Tip struct {
	Percent float64         `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// Breakdown itemises a checkout. Discount reduces the taxable base; delivery
// and rush fees are added after tax. Tips are computed on Total.
type Breakdown struct {
	Subtotal    money.Amount    `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Taxable     decimal.Decimal `json:"taxable"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee money.Amount    `json:"deliveryFee"`
	RushFee     money.Amount    `json:"rushFee"`
	Total       decimal.Decimal `json:"total"`
	Tips        []Tip           `json:"tips"`
}

// Checkout applies loyalty, delivery and rush adjustments to lines.
func (e *Engine) Checkout(lines []Line, opts Options) (Breakdown, error) {
	cfg := e.configs.Snapshot()
	biz, zones := cfg.Business, cfg.DeliveryZones

	b := Breakdown{Subtotal: subtotal(lines), Discount: decimal.Zero}
	if opts.Loyalty {
		b.Discount = biz.LoyaltyDiscount.Of(b.Subtotal)
	}
	b.Taxable = b.Subtotal.Decimal().Sub(b.Discount)
	b.Tax = b.Taxable.Mul(biz.TaxRate.Decimal)

	if opts.Delivery {
		b.DeliveryFee = biz.DeliveryFee
		if opts.Zone != "" {
			z, ok := zones[opts.Zone]
			if !ok {
				return Breakdown{}, &UnknownZoneError{Zone: opts.Zone}
			}
			b.DeliveryFee += z.Surcharge
		}
	}
	if opts.Rush {
		b.RushFee = biz.RushOrderSurcharge
	}

	b.Total = b.Taxable.Add(b.Tax).Add(b.DeliveryFee.Decimal()).Add(b.RushFee.Decimal())

	b.Tips = make([]Tip, 0, len(biz.TipSuggestions))
	for _, pct := range biz.TipSuggestions {
		b.Tips = append(b.Tips, Tip{
			Percent: pct,
			Amount:  b.Total.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100)),
		})
	}
	return b, nil
}
