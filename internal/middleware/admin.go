package middleware

import (
	"net/http" // HTTP status codes

	"pizza_pos/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// AccountKey holds the account row read by JWTAuthMiddleware
const AccountKey = "account"

// AdminOnlyMiddleware checks the role of the account JWTAuthMiddleware read
// from the database on this request
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := CurrentAccount(c)
		// Check if the account was loaded
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check if user is admin
		if !acct.IsAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}

// CurrentAccount returns the account loaded by JWTAuthMiddleware
func CurrentAccount(c *gin.Context) (domain.Account, bool) {
	v, ok := c.Get(AccountKey)
	if !ok {
		return domain.Account{}, false
	}
	a, ok := v.(domain.Account)
	return a, ok
}
