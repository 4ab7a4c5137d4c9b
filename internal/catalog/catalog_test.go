package catalog

import (
	"errors"
	"testing"

	"pizza_pos/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrices(t *testing.T) {
	c := Default()
	tests := []struct {
		kind Kind
		name string
		want string
	}{
		{KindPizzaSize, "small", "12.99"},
		{KindPizzaSize, "medium", "15.99"},
		{KindPizzaSize, "large", "18.99"},
		{KindTopping, "Pepperoni", "1.50"},
		{KindTopping, "Sausage", "1.50"},
		{KindTopping, "Bacon", "2.00"},
		{KindTopping, "Pineapple", "1.00"},
		{KindTopping, "Mushrooms", "1.00"},
		{KindTopping, "Onions", "1.00"},
		{KindDrink, "Coca-Cola", "2.50"},
		{KindDrink, "Pepsi", "2.50"},
		{KindDrink, "Sprite", "2.50"},
		{KindDrink, "Water", "1.50"},
		{KindDrink, "Orange Juice", "3.00"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.name, func(t *testing.T) {
			got, err := c.PriceOf(tt.kind, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, domain.Money(got))
		})
	}

	assert.Len(t, c.Items(KindPizzaSize), 3)
	assert.Len(t, c.Items(KindTopping), 6)
	assert.Len(t, c.Items(KindDrink), 5)
	assert.Len(t, c.StandardPizzas(), 5)
}

func TestPriceOfUnknown(t *testing.T) {
	c := Default()

	_, err := c.PriceOf(KindDrink, "Root Beer")
	assert.True(t, errors.Is(err, domain.ErrCatalogItemNotFound))

	// Names are scoped by kind
	_, err = c.PriceOf(KindDrink, "Pepperoni")
	assert.True(t, errors.Is(err, domain.ErrCatalogItemNotFound))

	_, err = c.SizePrice("huge")
	assert.True(t, errors.Is(err, domain.ErrInvalidSize))

	_, err = c.StandardPizza("Calzone")
	assert.True(t, errors.Is(err, domain.ErrCatalogItemNotFound))
}

func TestItemsKeepDeclarationOrder(t *testing.T) {
	names := []string{}
	for _, it := range Default().Items(KindDrink) {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Coca-Cola", "Pepsi", "Sprite", "Water", "Orange Juice"}, names)
}

func TestNewRejectsBadTables(t *testing.T) {
	_, err := New([]Item{
		{Kind: KindDrink, Name: "Water", UnitPrice: decimal.RequireFromString("1.50")},
		{Kind: KindDrink, Name: "Water", UnitPrice: decimal.RequireFromString("1.75")},
	}, nil)
	assert.Error(t, err)

	_, err = New([]Item{{Kind: KindDrink, Name: "Tea", UnitPrice: decimal.RequireFromString("1.005")}}, nil)
	assert.Error(t, err)

	_, err = New([]Item{{Kind: KindDrink, Name: "Tea", UnitPrice: decimal.RequireFromString("-1")}}, nil)
	assert.Error(t, err)

	_, err = New(nil, []StandardPizza{{Name: "Margherita"}, {Name: "Margherita"}})
	assert.Error(t, err)
}
