package order

import "pizza_pos/internal/domain"

// PizzaDraft is a custom pizza being composed before it goes into the cart
type PizzaDraft struct {
	Size     domain.Size   `json:"size,omitempty"`
	Toppings ToppingCounts `json:"toppings"`
}

// WithSize returns the draft with its size replaced
func (d PizzaDraft) WithSize(size string) (PizzaDraft, error) {
	sz, err := domain.ParseSize(size)
	if err != nil {
		return d, err
	}
	d.Size = sz
	return d, nil
}

// Increment returns the draft with one more portion of topping
func (d PizzaDraft) Increment(topping string) PizzaDraft {
	d.Toppings = d.Toppings.Increment(topping)
	return d
}

// Decrement returns the draft with one less portion of topping
func (d PizzaDraft) Decrement(topping string) PizzaDraft {
	d.Toppings = d.Toppings.Decrement(topping)
	return d
}
