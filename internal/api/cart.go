package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Index parsing
	"time"     // Timestamp format

	"pizza_pos/internal/catalog"    // Topping lookups
	"pizza_pos/internal/domain"     // Importing domain models
	"pizza_pos/internal/middleware" // Session lookup
	"pizza_pos/internal/order"      // Order model
	"pizza_pos/internal/session"    // Session store

	"github.com/gin-gonic/gin" // Gin web framework
)

// LineResponse is one cart or order line
type LineResponse struct {
	Index       int                   `json:"index"`              // Position in the cart
	Kind        domain.LineKind       `json:"kind"`               // Line kind
	Description string                `json:"description"`        // Display text
	Price       string                `json:"price"`              // Line price
	Size        domain.Size           `json:"size,omitempty"`     // Pizza size
	Toppings    []domain.ToppingCount `json:"toppings,omitempty"` // Custom pizza toppings
}

// CartResponse is the cart with freshly computed totals
type CartResponse struct {
	Items    []LineResponse `json:"items"`    // Cart lines
	Subtotal string         `json:"subtotal"` // Sum of lines
	Tax      string         `json:"tax"`      // Rounded tax
	Total    string         `json:"total"`    // Amount due
}

func lines(items []domain.LineItem) []LineResponse {
	out := make([]LineResponse, len(items))
	for i, it := range items {
		out[i] = LineResponse{
			Index:       i,
			Kind:        it.Kind,
			Description: it.Description,
			Price:       domain.Money(it.Price),
			Size:        it.Size,
			Toppings:    it.Toppings,
		}
	}
	return out
}

func cartResponse(model *order.Model, cart *order.Cart) CartResponse {
	totals := model.ComputeTotals(cart)
	return CartResponse{
		Items:    lines(cart.Items()),
		Subtotal: domain.Money(totals.Subtotal),
		Tax:      domain.Money(totals.Tax),
		Total:    domain.Money(totals.Total),
	}
}

// withSession runs fn on the caller's session. When fn succeeds the session
// is saved and fn's result is returned to the client.
func withSession(store session.Store, fn func(c *gin.Context, s *session.Session) (any, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.CurrentSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		resp, ok := fn(c, sess)
		if !ok {
			return // fn already replied
		}
		if saveSession(c, store, sess) {
			c.JSON(http.StatusOK, resp)
		}
	}
}

// GetCartHandler returns the cart and its totals
func GetCartHandler(model *order.Model) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.CurrentSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(model, &sess.Cart))
	}
}

// AddPizzaRequest adds a standard pizza
type AddPizzaRequest struct {
	Name string `json:"name" binding:"required"` // Menu pizza name
	Size string `json:"size"`                    // small, medium or large
}

// AddPizzaHandler adds a standard pizza to the cart
func AddPizzaHandler(model *order.Model, store session.Store) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		var req AddPizzaRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return nil, false
		}
		if _, err := model.AddStandardPizza(&s.Cart, req.Name, req.Size); err != nil {
			respondError(c, err, "Add pizza")
			return nil, false
		}
		return cartResponse(model, &s.Cart), true
	})
}

// AddCustomPizzaRequest adds a custom pizza
type AddCustomPizzaRequest struct {
	Size     string                `json:"size"`     // small, medium or large
	Toppings []domain.ToppingCount `json:"toppings"` // Ordered topping counts
}

// AddCustomPizzaHandler adds a custom pizza to the cart
func AddCustomPizzaHandler(model *order.Model, store session.Store) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		var req AddCustomPizzaRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return nil, false
		}
		if _, err := model.AddCustomPizza(&s.Cart, req.Size, order.NewToppingCounts(req.Toppings...)); err != nil {
			respondError(c, err, "Add custom pizza")
			return nil, false
		}
		return cartResponse(model, &s.Cart), true
	})
}

// AddDrinkRequest adds a drink
type AddDrinkRequest struct {
	Name string `json:"name" binding:"required"` // Drink name
}

// AddDrinkHandler adds a drink to the cart
func AddDrinkHandler(model *order.Model, store session.Store) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		var req AddDrinkRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return nil, false
		}
		if _, err := model.AddDrink(&s.Cart, req.Name); err != nil {
			respondError(c, err, "Add drink")
			return nil, false
		}
		return cartResponse(model, &s.Cart), true
	})
}

// RemoveItemHandler removes the line at :index
func RemoveItemHandler(model *order.Model, store session.Store) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
			return nil, false
		}
		if err := s.Cart.Remove(index); err != nil {
			respondError(c, err, "Remove item")
			return nil, false
		}
		return cartResponse(model, &s.Cart), true
	})
}

// ClearCartHandler empties the cart. The front end confirms first.
func ClearCartHandler(model *order.Model, store session.Store) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		s.Cart.Clear()
		return cartResponse(model, &s.Cart), true
	})
}

// OrderResponse is a finalized order
type OrderResponse struct {
	ID        uint           `json:"id"`         // Order ID
	UserID    uint           `json:"user_id"`    // Ordering account
	Items     []LineResponse `json:"items"`      // Snapshot of the cart
	Subtotal  string         `json:"subtotal"`   // Sum of lines
	Tax       string         `json:"tax"`        // Rounded tax
	Total     string         `json:"total"`      // Amount due
	CreatedAt string         `json:"created_at"` // Insert time
}

func orderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Items:     lines(o.Items),
		Subtotal:  domain.Money(o.Subtotal),
		Tax:       domain.Money(o.Tax),
		Total:     domain.Money(o.Total),
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// DraftResponse shows the custom pizza being composed and its running price
type DraftResponse struct {
	Size     domain.Size           `json:"size,omitempty"`  // Selected size
	Toppings []domain.ToppingCount `json:"toppings"`        // Selected toppings
	Price    string                `json:"price,omitempty"` // Price if added now
}

func draftResponse(model *order.Model, d order.PizzaDraft) DraftResponse {
	resp := DraftResponse{Size: d.Size, Toppings: d.Toppings.Selected()}
	if resp.Toppings == nil {
		resp.Toppings = []domain.ToppingCount{}
	}
	var scratch order.Cart
	if item, err := model.AddDraft(&scratch, d); err == nil {
		resp.Price = domain.Money(item.Price)
	}
	return resp
}

// GetDraftHandler returns the draft
func GetDraftHandler(model *order.Model) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.CurrentSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, draftResponse(model, sess.Draft))
	}
}

// DraftSizeRequest selects the draft size
type DraftSizeRequest struct {
	Size string `json:"size"` // small, medium or large
}

// SetDraftSizeHandler selects the size of the draft
func SetDraftSizeHandler(model *order.Model, store session.Store) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		var req DraftSizeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return nil, false
		}
		d, err := s.Draft.WithSize(req.Size)
		if err != nil {
			respondError(c, err, "Select size")
			return nil, false
		}
		s.Draft = d
		return draftResponse(model, s.Draft), true
	})
}

// DraftToppingHandler increments or decrements one topping of the draft
func DraftToppingHandler(model *order.Model, store session.Store, increment bool) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		name := c.Param("name")
		if _, err := model.Catalog().PriceOf(catalog.KindTopping, name); err != nil {
			respondError(c, err, "Change topping")
			return nil, false
		}
		if increment {
			s.Draft = s.Draft.Increment(name)
		} else {
			s.Draft = s.Draft.Decrement(name)
		}
		return draftResponse(model, s.Draft), true
	})
}

// DiscardDraftHandler throws the draft away
func DiscardDraftHandler(model *order.Model, store session.Store) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		s.Draft = order.PizzaDraft{}
		return draftResponse(model, s.Draft), true
	})
}

// AddDraftHandler moves the draft into the cart and starts a new one
func AddDraftHandler(model *order.Model, store session.Store) gin.HandlerFunc {
	return withSession(store, func(c *gin.Context, s *session.Session) (any, bool) {
		if _, err := model.AddDraft(&s.Cart, s.Draft); err != nil {
			respondError(c, err, "Add custom pizza")
			return nil, false
		}
		s.Draft = order.PizzaDraft{}
		return cartResponse(model, &s.Cart), true
	})
}
