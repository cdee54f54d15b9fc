package menu

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

// StromboliRecipes are the specialty recipes also sold as strombolis.
var StromboliRecipes = []string{"pepperoni", "supreme"}

var inches = map[config.Size]string{
	config.SizeSmall:  `10"`,
	config.SizeMedium: `12"`,
	config.SizeLarge:  `16"`,
}

// Derive builds the catalog for cfg. The catalog is always returned. Entries
// that cannot be priced are left out and reported in the joined error, so a
// bad recipe never takes the rest of the menu off sale and a missing topping
// is never priced as free.
func Derive(cfg *config.Config) (*Catalog, error) {
	recipes := cfg.RecipeKeys()
	cat := newCatalog(len(config.PizzaSizes)*(len(recipes)+1) +
		len(config.StromboliSizes)*len(StromboliRecipes) +
		len(cfg.MenuItems.Appetizers) + len(cfg.MenuItems.Beverages))
	var errs []error
	add := func(it Item, err error) {
		if err == nil {
			err = cat.add(it)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, size := range config.PizzaSizes {
		for _, key := range recipes {
			add(specialtyPizza(cfg, key, size))
		}
	}
	for _, size := range config.PizzaSizes {
		add(buildYourOwn(cfg, size), nil)
	}
	for _, size := range config.StromboliSizes {
		for _, key := range StromboliRecipes {
			add(stromboli(cfg, key, size))
		}
	}
	for _, it := range cfg.MenuItems.Appetizers {
		add(fixedItem(it, CategoryAppetizer), nil)
	}
	for _, it := range cfg.MenuItems.Beverages {
		add(fixedItem(it, CategoryBeverage), nil)
	}
	return cat, errors.Join(errs...)
}

func specialtyPizza(cfg *config.Config, key string, size config.Size) (Item, error) {
	id := key + "-" + string(size)
	r := cfg.SpecialtyPizzas[key]
	base, _ := cfg.Pricing.Pizza.For(size)
	price, err := recipePrice(cfg, base, r.Toppings)
	if err != nil {
		return Item{}, fmt.Errorf("menu item %s: %w", id, err)
	}
	return Item{
		ID:          id,
		Name:        fmt.Sprintf("%s %s Pizza", title(string(size)), recipeName(key, r)),
		Description: fmt.Sprintf("%s on %s (%s)", strings.Join(r.Toppings, ", "), size, inches[size]),
		Price:       price,
		Category:    CategoryPizza,
		Size:        size,
		Toppings:    slices.Clone(r.Toppings),
	}, nil
}

func buildYourOwn(cfg *config.Config, size config.Size) Item {
	base, _ := cfg.Pricing.Pizza.For(size)
	return Item{
		ID:           "byo-" + string(size),
		Name:         title(string(size)) + " Build Your Own Pizza",
		Description:  fmt.Sprintf("Choose your toppings (%s)", inches[size]),
		Price:        base,
		Category:     CategoryPizza,
		Size:         size,
		Customizable: true,
	}
}

func stromboli(cfg *config.Config, key string, size config.Size) (Item, error) {
	id := "stromboli-" + key + "-" + string(size)
	r, ok := cfg.SpecialtyPizzas[key]
	if !ok {
		return Item{}, fmt.Errorf("menu item %s: %w", id, &UnknownRecipeError{Recipe: key})
	}
	base, _ := cfg.Pricing.Stromboli.For(size)
	price, err := recipePrice(cfg, base, r.Toppings)
	if err != nil {
		return Item{}, fmt.Errorf("menu item %s: %w", id, err)
	}
	return Item{
		ID:          id,
		Name:        fmt.Sprintf("%s %s Stromboli", title(string(size)), recipeName(key, r)),
		Description: fmt.Sprintf("%s in %s stromboli", strings.Join(r.Toppings, ", "), size),
		Price:       price,
		Category:    CategoryStromboli,
		Size:        size,
		Toppings:    slices.Clone(r.Toppings),
	}, nil
}

func fixedItem(it config.MenuItem, cat Category) Item {
	return Item{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		Category:    cat,
	}
}

func recipePrice(cfg *config.Config, base money.Amount, toppings []string) (money.Amount, error) {
	extra, err := cfg.Pricing.ToppingsTotal(toppings)
	if err != nil {
		return 0, err
	}
	return base + extra, nil
}

func recipeName(key string, r config.Recipe) string {
	if r.Name != "" {
		return r.Name
	}
	return title(key)
}

func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
