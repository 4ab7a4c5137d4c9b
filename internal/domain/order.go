package domain

import (
	"strings" // Size parsing
	"time"    // Timestamps

	"github.com/shopspring/decimal" // Exact decimal money
)

// Size is a pizza size
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Sizes lists the valid sizes in menu order
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// ParseSize accepts a size name in any letter case
func ParseSize(s string) (Size, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ErrSizeRequired
	}
	for _, size := range Sizes {
		if string(size) == s {
			return size, nil
		}
	}
	return "", Wrap(ErrInvalidSize, s)
}

// Title renders the size for descriptions, e.g. "Medium"
func (s Size) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// LineKind tells what a cart line holds
type LineKind string

const (
	LineStandardPizza LineKind = "standard_pizza"
	LineCustomPizza   LineKind = "custom_pizza"
	LineDrink         LineKind = "drink"
)

// ToppingCount is one entry of a custom pizza composition
type ToppingCount struct {
	Name  string `json:"name"`  // Topping name as listed in the catalog
	Count int    `json:"count"` // Number of portions
}

// LineItem is a priced cart line. Price is fixed when the line is added.
type LineItem struct {
	Kind        LineKind        `json:"kind"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Size        Size            `json:"size,omitempty"`
	Toppings    []ToppingCount  `json:"toppings,omitempty"`
}

// Order Model
type Order struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                                                     // Primary key
	UserID    uint            `gorm:"index" json:"user_id"`                                                     // Account that placed the order
	User      Account         `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"` // Owning account
	Items     LineItems       `gorm:"column:items;type:text;not null" json:"items"`                             // Cart snapshot
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`                              // Sum of line prices
	Tax       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"tax"`                                   // Rounded tax
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`                                 // Subtotal plus tax
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`                                         // Insert time
}

// OrderSummary is one row of the flat order list
type OrderSummary struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// Money renders an amount with exactly two fraction digits
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
