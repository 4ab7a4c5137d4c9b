package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"pizza_pos/internal/account"    // Account service
	"pizza_pos/internal/db"         // Order log
	"pizza_pos/internal/domain"     // Importing domain models
	"pizza_pos/internal/middleware" // Acting admin
	"pizza_pos/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

const (
	ordersCacheKey = "admin:orders"   // Cached order list, dropped on checkout
	ordersCacheTTL = 60 * time.Second // Order list cache lifetime
	ordersLimit    = 50               // Rows in the order list
)

// ListUsersHandler returns all accounts ordered by username
func ListUsersHandler(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := accounts.List(c.Request.Context())
		if err != nil {
			respondError(c, err, "List users")
			return
		}
		resp := make([]UserSummary, len(list))
		// Map accounts to response format
		for i, a := range list {
			resp[i] = summarize(a)
		}
		c.JSON(http.StatusOK, gin.H{"users": resp})
	}
}

// UserRequest carries the fields of a new or edited account
type UserRequest struct {
	Username string `json:"username" binding:"required"` // Username
	PIN      string `json:"pin" binding:"required"`      // Four digit PIN
	IsAdmin  *bool  `json:"is_admin" binding:"required"` // Administrator flag
}

// CreateUserHandler adds an account
func CreateUserHandler(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username, PIN and is_admin are required"})
			return
		}
		acct, err := accounts.Create(c.Request.Context(), req.Username, req.PIN, *req.IsAdmin)
		if err != nil {
			respondError(c, err, "Create user")
			return
		}
		c.JSON(http.StatusCreated, summarize(acct))
	}
}

// UpdateUserHandler replaces username, PIN and admin flag of :username
func UpdateUserHandler(accounts *account.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username, PIN and is_admin are required"})
			return
		}
		acct, err := accounts.Update(c.Request.Context(), c.Param("username"), req.Username, req.PIN, *req.IsAdmin)
		if err != nil {
			respondError(c, err, "Update user")
			return
		}
		// The order list shows usernames
		_ = utils.DeleteCache(context.Background(), rdb, ordersCacheKey)
		c.JSON(http.StatusOK, summarize(acct))
	}
}

// DeleteUserHandler removes :username. Admins cannot delete themselves.
func DeleteUserHandler(accounts *account.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.CurrentAccount(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		if err := accounts.Delete(c.Request.Context(), caller, c.Param("username")); err != nil {
			respondError(c, err, "Delete user")
			return
		}
		// The order list shows usernames
		_ = utils.DeleteCache(context.Background(), rdb, ordersCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

// PINRequest carries a replacement PIN
type PINRequest struct {
	PIN string `json:"pin" binding:"required"` // Four digit PIN
}

// ResetPINHandler replaces the PIN of :username
func ResetPINHandler(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PINRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "PIN is required"})
			return
		}
		if err := accounts.ResetPIN(c.Request.Context(), c.Param("username"), req.PIN); err != nil {
			respondError(c, err, "Reset PIN")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "PIN updated"})
	}
}

// OrderRow is one line of the admin order list
type OrderRow struct {
	ID        uint   `json:"id"`         // Order ID
	Username  string `json:"username"`   // Ordering account, empty once deleted
	Total     string `json:"total"`      // Amount paid
	CreatedAt string `json:"created_at"` // Insert time
}

// OrderList is the cached order list payload
type OrderList struct {
	Orders []OrderRow `json:"orders"` // Newest first
	Total  int64      `json:"total"`  // Number of stored orders
	Cached bool       `json:"cached"` // Served from Redis
}

// ListOrdersHandler returns the latest orders, newest first
func ListOrdersHandler(orders *db.OrderRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached OrderList
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, ordersCacheKey, &cached)
		if err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		rows, err := orders.ListOrders(c.Request.Context(), ordersLimit)
		if err != nil {
			respondError(c, err, "List orders")
			return
		}
		total, err := orders.CountOrders(c.Request.Context())
		if err != nil {
			respondError(c, err, "List orders")
			return
		}
		resp := OrderList{Orders: make([]OrderRow, len(rows)), Total: total}
		// Map summaries to response format
		for i, r := range rows {
			resp.Orders[i] = OrderRow{
				ID:        r.ID,
				Username:  r.Username,
				Total:     domain.Money(r.Total),
				CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
			}
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, ordersCacheKey, resp, ordersCacheTTL)
		c.JSON(http.StatusOK, resp)
	}
}

// GetOrderHandler returns one stored order with its lines
func GetOrderHandler(orders *db.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		o, err := orders.FindOrder(c.Request.Context(), uint(id))
		if err != nil {
			respondError(c, err, "Get order")
			return
		}
		c.JSON(http.StatusOK, orderResponse(&o))
	}
}
