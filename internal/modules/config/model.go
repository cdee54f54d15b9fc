package config

import (
	"maps"
	"slices"

	"github.com/georgemunganga/pizza-pos/internal/money"
)

// Size is a pizza or stromboli size bucket.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// PizzaSizes lists pizza sizes in menu order.
var PizzaSizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// StromboliSizes lists stromboli sizes in menu order. There is no medium.
var StromboliSizes = []Size{SizeSmall, SizeLarge}

// Config is the whole restaurant configuration tree. A *Config handed out by
// the Store is shared and must be treated as read-only; use Clone to edit.
type Config struct {
	Info            Info                     `json:"info"`
	Business        Business                 `json:"business"`
	Pricing         Pricing                  `json:"pricing"`
	SpecialtyPizzas map[string]Recipe        `json:"specialtyPizzas" validate:"dive"`
	MenuItems       MenuItems                `json:"menuItems"`
	Roles           map[string]Role          `json:"roles" validate:"dive"`
	Inventory       map[string]InventoryItem `json:"inventory" validate:"dive"`
	KitchenStations []string                 `json:"kitchenStations"`
	DeliveryZones   map[string]DeliveryZone  `json:"deliveryZones" validate:"dive"`
}

// Info is display-only restaurant information.
type Info struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Logo    string `json:"logo"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Business holds the operational settings used by pricing and the ledger.
type Business struct {
	TaxRate            money.Rate   `json:"taxRate" validate:"gte=0,lt=1"`
	DeliveryFee        money.Amount `json:"deliveryFee" validate:"gte=0"`
	ManagerPassword    string       `json:"managerPassword" validate:"required"`
	RushOrderSurcharge money.Amount `json:"rushOrderSurcharge" validate:"gte=0"`
	LoyaltyDiscount    money.Rate   `json:"loyaltyDiscount" validate:"gte=0,lt=1"`
	TipSuggestions     []float64    `json:"tipSuggestions" validate:"dive,gte=0"`
	MaxOrderItems      int          `json:"maxOrderItems" validate:"gt=0"`
	OrderTimeout       int          `json:"orderTimeout" validate:"gt=0"`
}

// Pricing holds base prices per size and the topping price table.
type Pricing struct {
	Pizza     PizzaPrices             `json:"pizza"`
	Stromboli StromboliPrices         `json:"stromboli"`
	Toppings  map[string]money.Amount `json:"toppings" validate:"dive,gte=0"`
}

type PizzaPrices struct {
	Small  money.Amount `json:"small" validate:"gte=0"`
	Medium money.Amount `json:"medium" validate:"gte=0"`
	Large  money.Amount `json:"large" validate:"gte=0"`
}

// For returns the base price for a size.
func (p PizzaPrices) For(size Size) (money.Amount, bool) {
	switch size {
	case SizeSmall:
		return p.Small, true
	case SizeMedium:
		return p.Medium, true
	case SizeLarge:
		return p.Large, true
	}
	return 0, false
}

type StromboliPrices struct {
	Small money.Amount `json:"small" validate:"gte=0"`
	Large money.Amount `json:"large" validate:"gte=0"`
}

// For returns the base price for a size.
func (p StromboliPrices) For(size Size) (money.Amount, bool) {
	switch size {
	case SizeSmall:
		return p.Small, true
	case SizeLarge:
		return p.Large, true
	}
	return 0, false
}

// Topping returns the live price of a topping, or an *UnknownToppingError.
func (p Pricing) Topping(name string) (money.Amount, error) {
	price, ok := p.Toppings[name]
	if !ok {
		return 0, &UnknownToppingError{Topping: name}
	}
	return price, nil
}

// ToppingsTotal sums the prices of the named toppings.
func (p Pricing) ToppingsTotal(names []string) (money.Amount, error) {
	var sum money.Amount
	for _, name := range names {
		price, err := p.Topping(name)
		if err != nil {
			return 0, err
		}
		sum += price
	}
	return sum, nil
}

// Recipe is a named fixed topping set for a specialty pizza or stromboli.
type Recipe struct {
	Name        string   `json:"name"`
	Toppings    []string `json:"toppings"`
	Description string   `json:"description"`
}

// MenuItems are directly priced, non-derived offerings.
type MenuItems struct {
	Appetizers []MenuItem `json:"appetizers" validate:"dive"`
	Beverages  []MenuItem `json:"beverages" validate:"dive"`
}

type MenuItem struct {
	ID          string       `json:"id" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description"`
	Price       money.Amount `json:"price" validate:"gte=0"`
}

type Role struct {
	Name        string       `json:"name"`
	Permissions []string     `json:"permissions"`
	HourlyRate  money.Amount `json:"hourlyRate" validate:"gte=0"`
}

// InventoryItem is the reorder policy for one stock item. Current levels are
// tracked by the inventory module.
type InventoryItem struct {
	Minimum float64      `json:"minimum" validate:"gte=0"`
	Unit    string       `json:"unit"`
	Cost    money.Amount `json:"cost" validate:"gte=0"`
}

type DeliveryZone struct {
	Name      string       `json:"name"`
	Surcharge money.Amount `json:"surcharge" validate:"gte=0"`
}

// Clone returns a deep copy that is safe to modify.
func (c *Config) Clone() *Config {
	out := *c
	out.Business.TipSuggestions = slices.Clone(c.Business.TipSuggestions)
	out.Pricing.Toppings = maps.Clone(c.Pricing.Toppings)
	out.SpecialtyPizzas = make(map[string]Recipe, len(c.SpecialtyPizzas))
	for k, r := range c.SpecialtyPizzas {
		r.Toppings = slices.Clone(r.Toppings)
		out.SpecialtyPizzas[k] = r
	}
	out.MenuItems.Appetizers = slices.Clone(c.MenuItems.Appetizers)
	out.MenuItems.Beverages = slices.Clone(c.MenuItems.Beverages)
	out.Roles = make(map[string]Role, len(c.Roles))
	for k, r := range c.Roles {
		r.Permissions = slices.Clone(r.Permissions)
		out.Roles[k] = r
	}
	out.Inventory = maps.Clone(c.Inventory)
	out.KitchenStations = slices.Clone(c.KitchenStations)
	out.DeliveryZones = maps.Clone(c.DeliveryZones)
	return &out
}

// RecipeKeys returns specialty recipe keys in menu order (sorted).
func (c *Config) RecipeKeys() []string {
	return slices.Sorted(maps.Keys(c.SpecialtyPizzas))
}
