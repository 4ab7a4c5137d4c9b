// Package api exposes the point of sale over HTTP.
package api

import (
	"time" // Token lifetime

	"pizza_pos/internal/account"    // Account service
	"pizza_pos/internal/db"         // Order log
	"pizza_pos/internal/middleware" // Auth middleware
	"pizza_pos/internal/order"      // Order model
	"pizza_pos/internal/session"    // Session store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps are the collaborators the handlers need
type Deps struct {
	Accounts  *account.Service    // User directory
	Orders    *order.Model        // Cart pricing and checkout
	OrderLog  *db.OrderRepository // Stored orders
	Sessions  session.Store       // Per login cart state
	Redis     *redis.Client       // Optional cache, nil disables it
	JWTSecret string              // Token signing key
	TokenTTL  time.Duration       // Token lifetime
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	auth := middleware.JWTAuthMiddleware(d.JWTSecret, d.Sessions, d.Accounts)

	// Session routes
	r.POST("/session", LoginHandler(d.Accounts, d.Sessions, d.JWTSecret, d.TokenTTL)) // Login endpoint
	r.DELETE("/session", auth, LogoutHandler(d.Sessions))                             // Logout endpoint

	r.GET("/menu", MenuHandler(d.Orders.Catalog(), d.Orders.TaxRate().String())) // Menu endpoint

	// Cart routes (protected by JWT)
	cartGroup := r.Group("/cart")
	cartGroup.Use(auth)
	cartGroup.GET("", GetCartHandler(d.Orders))                                   // Cart and totals
	cartGroup.DELETE("", ClearCartHandler(d.Orders, d.Sessions))                  // Empty the cart
	cartGroup.POST("/pizzas", AddPizzaHandler(d.Orders, d.Sessions))              // Add menu pizza
	cartGroup.POST("/custom-pizzas", AddCustomPizzaHandler(d.Orders, d.Sessions)) // Add custom pizza
	cartGroup.POST("/drinks", AddDrinkHandler(d.Orders, d.Sessions))              // Add drink
	cartGroup.DELETE("/items/:index", RemoveItemHandler(d.Orders, d.Sessions))    // Remove one line

	// Custom pizza draft
	cartGroup.GET("/draft", GetDraftHandler(d.Orders))
	cartGroup.DELETE("/draft", DiscardDraftHandler(d.Orders, d.Sessions))
	cartGroup.PUT("/draft/size", SetDraftSizeHandler(d.Orders, d.Sessions))
	cartGroup.POST("/draft/toppings/:name/increment", DraftToppingHandler(d.Orders, d.Sessions, true))
	cartGroup.POST("/draft/toppings/:name/decrement", DraftToppingHandler(d.Orders, d.Sessions, false))
	cartGroup.POST("/draft/add", AddDraftHandler(d.Orders, d.Sessions))

	r.POST("/orders", auth, CheckoutHandler(d.Orders, d.Sessions, d.Redis)) // Checkout endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(auth, middleware.AdminOnlyMiddleware())
	adminGroup.GET("/users", ListUsersHandler(d.Accounts))                        // List users endpoint
	adminGroup.POST("/users", CreateUserHandler(d.Accounts))                      // Create user endpoint
	adminGroup.PUT("/users/:username", UpdateUserHandler(d.Accounts, d.Redis))    // Edit user endpoint
	adminGroup.DELETE("/users/:username", DeleteUserHandler(d.Accounts, d.Redis)) // Delete user endpoint
	adminGroup.PUT("/users/:username/pin", ResetPINHandler(d.Accounts))           // Reset PIN endpoint
	adminGroup.GET("/orders", ListOrdersHandler(d.OrderLog, d.Redis))             // Order list endpoint
	adminGroup.GET("/orders/:id", GetOrderHandler(d.OrderLog))                    // Order detail endpoint
}
