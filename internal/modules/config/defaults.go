package config

import "github.com/georgemunganga/pizza-pos/internal/money"

// Default returns a fresh copy of the compiled-in configuration.
func Default() *Config {
	return &Config{
		Info: Info{
			Name:    "Tony's Pizza Palace",
			Address: "123 Main Street, Lansing, MI 48906",
			Phone:   "(517) 555-PIZZA",
			Logo:    "🍕",
			Email:   "orders@tonyspizza.com",
			Website: "www.tonyspizza.com",
		},
		Business: Business{
			TaxRate:            money.MustRate("0.085"),
			DeliveryFee:        money.MustParse("3.99"),
			ManagerPassword:    "9999",
			RushOrderSurcharge: money.MustParse("2.00"),
			LoyaltyDiscount:    money.MustRate("0.10"),
			TipSuggestions:     []float64{15, 18, 20, 25},
			MaxOrderItems:      50,
			OrderTimeout:       30,
		},
		Pricing: Pricing{
			Pizza: PizzaPrices{
				Small:  money.MustParse("9.99"),
				Medium: money.MustParse("12.99"),
				Large:  money.MustParse("15.99"),
			},
			Stromboli: StromboliPrices{
				Small: money.MustParse("8.99"),
				Large: money.MustParse("11.99"),
			},
			Toppings: map[string]money.Amount{
				"pepperoni":       money.MustParse("1.50"),
				"sausage":         money.MustParse("1.50"),
				"ham":             money.MustParse("1.50"),
				"bacon":           money.MustParse("1.75"),
				"chicken":         money.MustParse("2.00"),
				"mushrooms":       money.MustParse("1.25"),
				"peppers":         money.MustParse("1.25"),
				"onions":          money.MustParse("1.25"),
				"olives":          money.MustParse("1.25"),
				"tomatoes":        money.MustParse("1.25"),
				"pineapple":       money.MustParse("1.25"),
				"extraCheese":     money.MustParse("1.75"),
				"freshMozzarella": money.MustParse("2.25"),
				"basil":           money.MustParse("1.00"),
			},
		},
		SpecialtyPizzas: map[string]Recipe{
			"margherita": {
				Name:        "Margherita",
				Toppings:    []string{"freshMozzarella", "basil"},
				Description: "Fresh mozzarella and basil",
			},
			"pepperoni": {
				Name:        "Pepperoni",
				Toppings:    []string{"pepperoni"},
				Description: "Classic pepperoni pizza",
			},
			"supreme": {
				Name:        "Supreme",
				Toppings:    []string{"pepperoni", "sausage", "peppers", "onions", "mushrooms"},
				Description: "The works - pepperoni, sausage, peppers, onions, mushrooms",
			},
			"hawaiian": {
				Name:        "Hawaiian",
				Toppings:    []string{"ham", "pineapple"},
				Description: "Ham and pineapple",
			},
			"meatLovers": {
				Name:        "Meat Lovers",
				Toppings:    []string{"pepperoni", "sausage", "ham", "bacon"},
				Description: "All the meats - pepperoni, sausage, ham, bacon",
			},
			"veggie": {
				Name:        "Veggie",
				Toppings:    []string{"mushrooms", "peppers", "onions", "olives", "tomatoes"},
				Description: "Fresh vegetables",
			},
		},
		MenuItems: MenuItems{
			Appetizers: []MenuItem{
				{ID: "garlic-bread", Name: "Garlic Bread", Description: "Fresh baked with garlic butter", Price: money.MustParse("6.99")},
				{ID: "mozzarella-sticks", Name: "Mozzarella Sticks", Description: "6 pieces with marinara sauce", Price: money.MustParse("8.99")},
				{ID: "buffalo-wings", Name: "Buffalo Wings", Description: "8 pieces, choice of sauce", Price: money.MustParse("11.99")},
				{ID: "caesar-salad", Name: "Caesar Salad", Description: "Romaine, croutons, parmesan", Price: money.MustParse("7.99")},
			},
			Beverages: []MenuItem{
				{ID: "soft-drink", Name: "Soft Drink", Description: "Coke, Pepsi, Sprite, etc.", Price: money.MustParse("2.99")},
				{ID: "bottled-water", Name: "Bottled Water", Description: "16oz bottle", Price: money.MustParse("1.99")},
				{ID: "coffee", Name: "Coffee", Description: "Fresh brewed", Price: money.MustParse("2.49")},
				{ID: "beer", Name: "Beer", Description: "Domestic bottle", Price: money.MustParse("4.99")},
			},
		},
		Roles: map[string]Role{
			"manager": {Name: "Manager", Permissions: []string{"all"}, HourlyRate: money.MustParse("18.00")},
			"cook":    {Name: "Cook", Permissions: []string{"kitchen", "inventory"}, HourlyRate: money.MustParse("15.00")},
			"driver":  {Name: "Driver", Permissions: []string{"delivery", "pos"}, HourlyRate: money.MustParse("12.00")},
			"cashier": {Name: "Cashier", Permissions: []string{"pos", "customers"}, HourlyRate: money.MustParse("13.00")},
		},
		Inventory: map[string]InventoryItem{
			"cheese":    {Minimum: 10, Unit: "lbs", Cost: money.MustParse("4.50")},
			"pepperoni": {Minimum: 15, Unit: "lbs", Cost: money.MustParse("6.25")},
			"dough":     {Minimum: 20, Unit: "balls", Cost: money.MustParse("0.85")},
			"sauce":     {Minimum: 5, Unit: "containers", Cost: money.MustParse("3.20")},
			"bacon":     {Minimum: 5, Unit: "lbs", Cost: money.MustParse("7.50")},
		},
		KitchenStations: []string{"pizza", "fryer", "prep", "oven", "salad"},
		DeliveryZones: map[string]DeliveryZone{
			"north": {Name: "North Zone", Surcharge: 0},
			"south": {Name: "South Zone", Surcharge: 0},
			"east":  {Name: "East Zone", Surcharge: money.MustParse("1.00")},
			"west":  {Name: "West Zone", Surcharge: money.MustParse("1.00")},
		},
	}
}
