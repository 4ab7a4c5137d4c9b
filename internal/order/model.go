// Package order builds carts, prices them and turns them into persisted orders.
package order

import (
	"context" // Context for repository calls
	"errors"  // Sentinel comparison
	"fmt"     // Description formatting
	"strings" // Description joining
	"time"    // Log timestamps

	"pizza_pos/internal/catalog" // Price tables
	"pizza_pos/internal/domain"  // Domain models and errors

	"github.com/shopspring/decimal" // Exact decimal money
	"github.com/sirupsen/logrus"    // Structured logging
)

// DefaultTaxRate matches the TAX_RATE configuration default
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Repository persists finalized orders
type Repository interface {
	CreateOrder(ctx context.Context, o *domain.Order) error
}

// Totals are the amounts derived from a cart
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Model prices cart lines against a catalog and finalizes orders
type Model struct {
	catalog *catalog.Catalog
	repo    Repository
	taxRate decimal.Decimal
}

// NewModel returns a Model charging taxRate. A zero rate charges no tax.
func NewModel(c *catalog.Catalog, repo Repository, taxRate decimal.Decimal) *Model {
	return &Model{catalog: c, repo: repo, taxRate: taxRate}
}

// Catalog returns the price tables the model uses
func (m *Model) Catalog() *catalog.Catalog {
	return m.catalog
}

// TaxRate returns the configured rate
func (m *Model) TaxRate() decimal.Decimal {
	return m.taxRate
}

// AddStandardPizza appends a menu pizza of the given size
func (m *Model) AddStandardPizza(cart *Cart, name, size string) (domain.LineItem, error) {
	sz, err := domain.ParseSize(size)
	if err != nil {
		if errors.Is(err, domain.ErrSizeRequired) {
			return domain.LineItem{}, domain.Wrap(domain.ErrInvalidSize, "no size given")
		}
		return domain.LineItem{}, err
	}
	pizza, err := m.catalog.StandardPizza(name)
	if err != nil {
		return domain.LineItem{}, err
	}
	base, err := m.catalog.SizePrice(sz)
	if err != nil {
		return domain.LineItem{}, err
	}
	item := domain.LineItem{
		Kind:        domain.LineStandardPizza,
		Description: fmt.Sprintf("%s (%s)", pizza.Name, sz.Title()),
		Price:       base,
		Size:        sz,
	}
	cart.append(item)
	return item, nil
}

// AddCustomPizza appends a pizza built from a size and counted toppings.
// Each portion is priced independently: N portions cost N times the unit price.
func (m *Model) AddCustomPizza(cart *Cart, size string, toppings ToppingCounts) (domain.LineItem, error) {
	sz, err := domain.ParseSize(size)
	if err != nil {
		return domain.LineItem{}, err
	}
	base, err := m.catalog.SizePrice(sz)
	if err != nil {
		return domain.LineItem{}, err
	}
	price := base
	for _, e := range toppings.Entries() {
		if e.Count < 0 {
			return domain.LineItem{}, domain.Wrap(domain.ErrInvalidToppingCount, e.Name)
		}
		unit, err := m.catalog.PriceOf(catalog.KindTopping, e.Name)
		if err != nil {
			return domain.LineItem{}, err
		}
		price = price.Add(unit.Mul(decimal.NewFromInt(int64(e.Count))))
	}
	selected := toppings.Selected()
	if len(selected) == 0 {
		return domain.LineItem{}, domain.ErrNoToppingsSelected
	}
	parts := make([]string, len(selected))
	for i, e := range selected {
		parts[i] = fmt.Sprintf("%s x%d", e.Name, e.Count)
	}
	item := domain.LineItem{
		Kind:        domain.LineCustomPizza,
		Description: fmt.Sprintf("Custom Pizza (%s) - %s", sz.Title(), strings.Join(parts, ", ")),
		Price:       price,
		Size:        sz,
		Toppings:    selected,
	}
	cart.append(item)
	return item, nil
}

// AddDrink appends a drink
func (m *Model) AddDrink(cart *Cart, name string) (domain.LineItem, error) {
	p, err := m.catalog.PriceOf(catalog.KindDrink, name)
	if err != nil {
		return domain.LineItem{}, err
	}
	item := domain.LineItem{Kind: domain.LineDrink, Description: name, Price: p}
	cart.append(item)
	return item, nil
}

// AddDraft appends the custom pizza composed in draft
func (m *Model) AddDraft(cart *Cart, draft PizzaDraft) (domain.LineItem, error) {
	return m.AddCustomPizza(cart, string(draft.Size), draft.Toppings)
}

// ComputeTotals sums the cart from scratch on every call. Tax is rounded half
// up to cents before it is added, so the total never needs rounding.
func (m *Model) ComputeTotals(cart *Cart) Totals {
	subtotal := decimal.Zero
	for _, l := range cart.Lines {
		subtotal = subtotal.Add(l.Price)
	}
	// Round is half away from zero, which is half up for non-negative amounts
	tax := subtotal.Mul(m.taxRate).Round(2)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

// Finalize records the cart as an order placed by accountID and empties the
// cart. The cart is left untouched unless the order was written.
func (m *Model) Finalize(ctx context.Context, accountID uint, cart *Cart) (*domain.Order, error) {
	if cart.Len() == 0 {
		return nil, domain.ErrEmptyCart
	}
	totals := m.ComputeTotals(cart)
	o := &domain.Order{
		UserID:   accountID,       // Ordering account
		Items:    cart.Items(),    // Snapshot of the cart
		Subtotal: totals.Subtotal, // Sum of line prices
		Tax:      totals.Tax,      // Rounded tax
		Total:    totals.Total,    // Amount due
	}
	if err := m.repo.CreateOrder(ctx, o); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": accountID,                  // Ordering account
			"items":   cart.Len(),                 // Line count
			"total":   domain.Money(totals.Total), // Amount due
			"error":   err.Error(),                // Error message
		}).Error("Order finalize failed")
		return nil, err
	}
	cart.Clear()
	logrus.WithFields(logrus.Fields{
		"order_id":  o.ID,                            // New order ID
		"user_id":   accountID,                       // Ordering account
		"items":     len(o.Items),                    // Line count
		"subtotal":  domain.Money(o.Subtotal),        // Subtotal
		"tax":       domain.Money(o.Tax),             // Tax
		"total":     domain.Money(o.Total),           // Amount due
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Order finalized")
	return o, nil
}
