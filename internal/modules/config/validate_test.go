package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/pizza-pos/internal/money"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateReportsFields(t *testing.T) {
	cfg := Default()
	cfg.Business.TaxRate = money.MustRate("1")
	cfg.Business.OrderTimeout = 0
	cfg.MenuItems.Beverages[0].Price = -100

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "business.taxRate fails lt=1")
	assert.Contains(t, err.Error(), "business.orderTimeout fails gt=0")
	assert.Contains(t, err.Error(), "menuItems.beverages[0].price fails gte=0")
}

func TestValidateIgnoresDanglingRecipeToppings(t *testing.T) {
	cfg := Default()
	r := cfg.SpecialtyPizzas["veggie"]
	r.Toppings = append(r.Toppings, "artichokes")
	cfg.SpecialtyPizzas["veggie"] = r
	assert.NoError(t, cfg.Validate())
}

func TestCloneIsDeep(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Pricing.Toppings["basil"] = 0
	b.SpecialtyPizzas["supreme"].Toppings[0] = "ham"
	b.Business.TipSuggestions[0] = 99
	b.MenuItems.Appetizers[0].Name = "x"

	assert.Equal(t, money.Amount(100), a.Pricing.Toppings["basil"])
	assert.Equal(t, "pepperoni", a.SpecialtyPizzas["supreme"].Toppings[0])
	assert.Equal(t, float64(15), a.Business.TipSuggestions[0])
	assert.NotEqual(t, "x", a.MenuItems.Appetizers[0].Name)
}

func TestRecipeKeysSorted(t *testing.T) {
	assert.Equal(t, []string{"hawaiian", "margherita", "meatLovers", "pepperoni", "supreme", "veggie"}, Default().RecipeKeys())
}
