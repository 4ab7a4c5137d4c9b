// Package catalog holds the fixed price tables of the shop.
package catalog

import (
	"fmt" // Error formatting

	"pizza_pos/internal/domain" // Domain errors and sizes

	"github.com/shopspring/decimal" // Exact decimal money
)

// Kind is the price table an item belongs to
type Kind string

const (
	KindPizzaSize Kind = "pizza_size"
	KindTopping   Kind = "topping"
	KindDrink     Kind = "drink"
)

// Item is one priced catalog entry
type Item struct {
	Kind      Kind            `json:"kind"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// StandardPizza is a named menu pizza priced by size only
type StandardPizza struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type key struct {
	kind Kind
	name string
}

// Catalog is immutable after New returns
type Catalog struct {
	prices map[key]decimal.Decimal
	items  []Item
	pizzas []StandardPizza
}

// New builds a catalog. Item order is kept for listings.
func New(items []Item, pizzas []StandardPizza) (*Catalog, error) {
	c := &Catalog{
		prices: make(map[key]decimal.Decimal, len(items)),
		items:  make([]Item, 0, len(items)),
		pizzas: append([]StandardPizza(nil), pizzas...),
	}
	for _, it := range items {
		k := key{kind: it.Kind, name: it.Name}
		if _, dup := c.prices[k]; dup {
			return nil, fmt.Errorf("catalog: duplicate %s %q", it.Kind, it.Name)
		}
		if it.UnitPrice.IsNegative() || !it.UnitPrice.Equal(it.UnitPrice.Round(2)) {
			return nil, fmt.Errorf("catalog: %s %q has invalid price %s", it.Kind, it.Name, it.UnitPrice)
		}
		c.prices[k] = it.UnitPrice
		c.items = append(c.items, it)
	}
	seen := make(map[string]bool, len(pizzas))
	for _, p := range pizzas {
		if seen[p.Name] {
			return nil, fmt.Errorf("catalog: duplicate standard pizza %q", p.Name)
		}
		seen[p.Name] = true
	}
	return c, nil
}

// PriceOf returns the unit price for a kind/name pair
func (c *Catalog) PriceOf(kind Kind, name string) (decimal.Decimal, error) {
	p, ok := c.prices[key{kind: kind, name: name}]
	if !ok {
		return decimal.Zero, domain.Wrap(domain.ErrCatalogItemNotFound, fmt.Sprintf("%s %q", kind, name))
	}
	return p, nil
}

// SizePrice is the base price of a pizza of the given size
func (c *Catalog) SizePrice(size domain.Size) (decimal.Decimal, error) {
	p, err := c.PriceOf(KindPizzaSize, string(size))
	if err != nil {
		return decimal.Zero, domain.Wrap(domain.ErrInvalidSize, string(size))
	}
	return p, nil
}

// Items lists the entries of one kind in declaration order
func (c *Catalog) Items(kind Kind) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// StandardPizzas lists the menu pizzas
func (c *Catalog) StandardPizzas() []StandardPizza {
	return append([]StandardPizza(nil), c.pizzas...)
}

// StandardPizza looks a menu pizza up by name
func (c *Catalog) StandardPizza(name string) (StandardPizza, error) {
	for _, p := range c.pizzas {
		if p.Name == name {
			return p, nil
		}
	}
	return StandardPizza{}, domain.Wrap(domain.ErrCatalogItemNotFound, fmt.Sprintf("pizza %q", name))
}
