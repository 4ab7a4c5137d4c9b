package catalog

import "github.com/shopspring/decimal"

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var defaultItems = []Item{
	{Kind: KindPizzaSize, Name: "small", UnitPrice: price("12.99")},
	{Kind: KindPizzaSize, Name: "medium", UnitPrice: price("15.99")},
	{Kind: KindPizzaSize, Name: "large", UnitPrice: price("18.99")},

	{Kind: KindTopping, Name: "Pepperoni", UnitPrice: price("1.50")},
	{Kind: KindTopping, Name: "Sausage", UnitPrice: price("1.50")},
	{Kind: KindTopping, Name: "Bacon", UnitPrice: price("2.00")},
	{Kind: KindTopping, Name: "Pineapple", UnitPrice: price("1.00")},
	{Kind: KindTopping, Name: "Mushrooms", UnitPrice: price("1.00")},
	{Kind: KindTopping, Name: "Onions", UnitPrice: price("1.00")},

	{Kind: KindDrink, Name: "Coca-Cola", UnitPrice: price("2.50")},
	{Kind: KindDrink, Name: "Pepsi", UnitPrice: price("2.50")},
	{Kind: KindDrink, Name: "Sprite", UnitPrice: price("2.50")},
	{Kind: KindDrink, Name: "Water", UnitPrice: price("1.50")},
	{Kind: KindDrink, Name: "Orange Juice", UnitPrice: price("3.00")},
}

var defaultPizzas = []StandardPizza{
	{Name: "Margherita", Description: "Classic tomato and mozzarella"},
	{Name: "Pepperoni", Description: "Pepperoni and mozzarella"},
	{Name: "Supreme", Description: "Pepperoni, sausage, mushrooms, onions"},
	{Name: "Hawaiian", Description: "Ham and pineapple"},
	{Name: "Meat Lovers", Description: "Pepperoni, sausage, bacon"},
}

// Default returns the shop's standard price list
func Default() *Catalog {
	c, err := New(defaultItems, defaultPizzas)
	if err != nil {
		panic(err) // static table
	}
	return c
}
