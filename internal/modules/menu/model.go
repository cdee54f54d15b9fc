package menu

import (
	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

type Category string

const (
	CategoryPizza     Category = "pizza"
	CategoryStromboli Category = "stromboli"
	CategoryAppetizer Category = "appetizer"
	CategoryBeverage  Category = "beverage"
)

// Item is one sellable catalog entry. Price is the full price for fixed items
// and the base price for customizable ones.
type Item struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        money.Amount `json:"price"`
	Category     Category     `json:"category"`
	Size         config.Size  `json:"size,omitempty"`
	Toppings     []string     `json:"toppings,omitempty"`
	Customizable bool         `json:"customizable,omitempty"`
}

// Catalog is the menu derived from one configuration version. It is never
// modified after Derive returns it.
type Catalog struct {
	Version uint64 `json:"version"`
	Items   []Item `json:"items"`

	index map[string]int
}

func newCatalog(capacity int) *Catalog {
	return &Catalog{Items: make([]Item, 0, capacity), index: make(map[string]int, capacity)}
}

// add appends it unless the id is taken.
func (c *Catalog) add(it Item) error {
	if _, dup := c.index[it.ID]; dup {
		return &DuplicateItemError{ID: it.ID}
	}
	c.index[it.ID] = len(c.Items)
	c.Items = append(c.Items, it)
	return nil
}

// Find looks an item up by id.
func (c *Catalog) Find(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.Items[i], true
}

// ByCategory returns the items of one category in catalog order.
func (c *Catalog) ByCategory(cat Category) []Item {
	var out []Item
	for _, it := range c.Items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Len() int { return len(c.Items) }
