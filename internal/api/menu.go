package api

import (
	"net/http" // HTTP status codes

	"pizza_pos/internal/catalog" // Price tables
	"pizza_pos/internal/domain"  // Money formatting

	"github.com/gin-gonic/gin" // Gin web framework
)

// MenuItem is a priced catalog entry
type MenuItem struct {
	Name  string `json:"name"`  // Item name
	Price string `json:"price"` // Unit price
}

// MenuResponse lists everything that can be ordered
type MenuResponse struct {
	Pizzas   []catalog.StandardPizza `json:"pizzas"`   // Standard pizzas
	Sizes    []MenuItem              `json:"sizes"`    // Base price per size
	Toppings []MenuItem              `json:"toppings"` // Price per portion
	Drinks   []MenuItem              `json:"drinks"`   // Drinks
	TaxRate  string                  `json:"tax_rate"` // Sales tax rate
}

func menuItems(items []catalog.Item) []MenuItem {
	out := make([]MenuItem, len(items))
	for i, it := range items {
		out[i] = MenuItem{Name: it.Name, Price: domain.Money(it.UnitPrice)}
	}
	return out
}

// MenuHandler returns the catalog
func MenuHandler(cat *catalog.Catalog, taxRate string) gin.HandlerFunc {
	resp := MenuResponse{
		Pizzas:   cat.StandardPizzas(),
		Sizes:    menuItems(cat.Items(catalog.KindPizzaSize)),
		Toppings: menuItems(cat.Items(catalog.KindTopping)),
		Drinks:   menuItems(cat.Items(catalog.KindDrink)),
		TaxRate:  taxRate,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
