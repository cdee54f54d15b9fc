package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/menu"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

func newTestEngine(t *testing.T) (*Engine, *config.Store, *menu.Catalog) {
	store := config.NewStore(config.NewMemoryBlobStore(), nil)
	cat, err := menu.Derive(store.Snapshot())
	require.NoError(t, err)
	return NewEngine(store), store, cat
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func find(t *testing.T, cat *menu.Catalog, id string) menu.Item {
	t.Helper()
	it, ok := cat.Find(id)
	require.True(t, ok, id)
	return it
}

func TestPriceOfFixedItemIgnoresToppings(t *testing.T) {
	e, _, cat := newTestEngine(t)
	p, err := e.PriceOf(find(t, cat, "supreme-large"), []string{"bacon", "nonsense"})
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("22.74"), p)
}

func TestPriceOfCustomizable(t *testing.T) {
	e, _, cat := newTestEngine(t)
	p, err := e.PriceOf(find(t, cat, "byo-medium"), []string{"chicken", "olives"})
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("16.24"), p)
}

func TestPriceOfUsesLiveToppingPrices(t *testing.T) {
	e, store, cat := newTestEngine(t)
	require.NoError(t, store.Set("pricing.toppings.olives", json.Number("0.75")))

	p, err := e.PriceOf(find(t, cat, "byo-small"), []string{"olives"})
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("10.74"), p)
}

func TestPriceOfUnknownToppingIsNeverFree(t *testing.T) {
	e, _, cat := newTestEngine(t)
	_, err := e.PriceOf(find(t, cat, "byo-small"), []string{"pepperoni", "anchovies"})
	var unknown *config.UnknownToppingError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "anchovies", unknown.Topping)
}

func TestTotalsScenario(t *testing.T) {
	e, _, cat := newTestEngine(t)
	byo := find(t, cat, "byo-small")
	a, err := e.PriceOf(byo, []string{"pepperoni"})
	require.NoError(t, err)
	b, err := e.PriceOf(byo, []string{"mushrooms"})
	require.NoError(t, err)

	tot := e.Totals([]Line{{UnitPrice: a, Quantity: 1}, {UnitPrice: b, Quantity: 1}})

	assert.Equal(t, money.MustParse("22.73"), tot.Subtotal)
	assert.True(t, tot.Tax.Equal(dec("1.93205")), tot.Tax.String())
	assert.True(t, tot.Total.Equal(tot.Subtotal.Decimal().Add(tot.Tax)))
	assert.Equal(t, DisplayTotals{Subtotal: "$22.73", Tax: "$1.93", Total: "$24.66"}, tot.Display())
}

func TestTotalsIsIdempotent(t *testing.T) {
	e, _, _ := newTestEngine(t)
	lines := []Line{{UnitPrice: 1299, Quantity: 2}, {UnitPrice: 299, Quantity: 3}}
	first := e.Totals(lines)
	second := e.Totals(lines)
	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.True(t, first.Total.Equal(second.Total))
}

func TestTotalsAvoidFloatDrift(t *testing.T) {
	e, _, _ := newTestEngine(t)
	lines := make([]Line, 1000)
	for i := range lines {
		lines[i] = Line{UnitPrice: 10, Quantity: 1}
	}
	tot := e.Totals(lines)
	assert.Equal(t, money.MustParse("100.00"), tot.Subtotal)
	assert.True(t, tot.Tax.Equal(dec("8.5")))
}

func TestTotalsEmpty(t *testing.T) {
	e, _, _ := newTestEngine(t)
	tot := e.Totals(nil)
	assert.Equal(t, money.Amount(0), tot.Subtotal)
	assert.True(t, tot.Total.IsZero())
	assert.Equal(t, "$0.00", tot.Display().Total)
}

func TestTotalsJSON(t *testing.T) {
	e, _, _ := newTestEngine(t)
	b, err := json.Marshal(e.Totals([]Line{{UnitPrice: 2273, Quantity: 1}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"subtotal": 22.73,
		"tax": 1.93205,
		"total": 24.66205,
		"display": {"subtotal": "$22.73", "tax": "$1.93", "total": "$24.66"}
	}`, string(b))
}

func TestMaxOrderItems(t *testing.T) {
	e, store, _ := newTestEngine(t)
	assert.Equal(t, 50, e.MaxOrderItems())
	require.NoError(t, store.Set("business.maxOrderItems", 3))
	assert.Equal(t, 3, e.MaxOrderItems())
}
