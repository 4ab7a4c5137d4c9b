package order

import (
	"fmt" // Error detail

	"pizza_pos/internal/domain" // Line items
)

// Cart is the ordered list of lines of the order being built
type Cart struct {
	Lines []domain.LineItem `json:"items"`
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.Lines)
}

// Items returns a copy of the lines
func (c *Cart) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(c.Lines))
	for i, l := range c.Lines {
		l.Toppings = append([]domain.ToppingCount(nil), l.Toppings...)
		out[i] = l
	}
	return out
}

func (c *Cart) append(item domain.LineItem) {
	c.Lines = append(c.Lines, item)
}

// Remove deletes the line at index
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return domain.Wrap(domain.ErrIndexOutOfRange, fmt.Sprintf("index %d, cart has %d items", index, len(c.Lines)))
	}
	c.Lines = append(c.Lines[:index:index], c.Lines[index+1:]...)
	return nil
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = nil
}
