package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

func TestCheckoutPlain(t *testing.T) {
	e, _, _ := newTestEngine(t)
	b, err := e.Checkout([]Line{{UnitPrice: 2273, Quantity: 1}}, Options{})
	require.NoError(t, err)

	assert.True(t, b.Discount.IsZero())
	assert.True(t, b.Tax.Equal(dec("1.93205")))
	assert.Equal(t, money.Amount(0), b.DeliveryFee)
	assert.Equal(t, money.Amount(0), b.RushFee)
	assert.True(t, b.Total.Equal(dec("24.66205")))
}

func TestCheckoutAllAdjustments(t *testing.T) {
	e, _, _ := newTestEngine(t)
	b, err := e.Checkout([]Line{{UnitPrice: 2273, Quantity: 1}}, Options{
		Delivery: true,
		Zone:     "east",
		Rush:     true,
		Loyalty:  true,
	})
	require.NoError(t, err)

	assert.True(t, b.Discount.Equal(dec("2.273")), b.Discount.String())
	assert.True(t, b.Taxable.Equal(dec("20.457")))
	assert.True(t, b.Tax.Equal(dec("1.738845")), b.Tax.String())
	assert.Equal(t, money.MustParse("4.99"), b.DeliveryFee)
	assert.Equal(t, money.MustParse("2.00"), b.RushFee)
	assert.True(t, b.Total.Equal(dec("29.185845")), b.Total.String())

	require.Len(t, b.Tips, 4)
	assert.Equal(t, float64(15), b.Tips[0].Percent)
	assert.True(t, b.Tips[0].Amount.Equal(dec("4.37787675")), b.Tips[0].Amount.String())
	assert.True(t, b.Tips[2].Amount.Equal(dec("5.837169")), b.Tips[2].Amount.String())
}

func TestCheckoutDeliveryWithoutZone(t *testing.T) {
	e, _, _ := newTestEngine(t)
	b, err := e.Checkout([]Line{{UnitPrice: 1000, Quantity: 1}}, Options{Delivery: true})
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("3.99"), b.DeliveryFee)
}

func TestCheckoutUnknownZone(t *testing.T) {
	e, _, _ := newTestEngine(t)
	_, err := e.Checkout([]Line{{UnitPrice: 1000, Quantity: 1}}, Options{Delivery: true, Zone: "moon"})
	var zoneErr *UnknownZoneError
	assert.ErrorAs(t, err, &zoneErr)
}

// shiftingSource hands out the defaults once and a zoneless configuration on
// every later call, as if an operator saved settings mid-checkout.
type shiftingSource struct{ calls int }

func (s *shiftingSource) Snapshot() *config.Config {
	s.calls++
	cfg := config.Default()
	if s.calls > 1 {
		cfg.DeliveryZones = nil
		cfg.Business.DeliveryFee = 0
	}
	return cfg
}

func TestCheckoutReadsOneConfiguration(t *testing.T) {
	src := &shiftingSource{}
	b, err := NewEngine(src).Checkout([]Line{{UnitPrice: 2273, Quantity: 1}}, Options{Delivery: true, Zone: "east"})
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, config.Default().Business.DeliveryFee+config.Default().DeliveryZones["east"].Surcharge, b.DeliveryFee)
}
