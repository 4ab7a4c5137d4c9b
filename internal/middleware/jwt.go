package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"pizza_pos/internal/account" // Account lookups
	"pizza_pos/internal/domain"  // Importing domain models
	"pizza_pos/internal/session" // Session store
	"pizza_pos/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// Context keys set by JWTAuthMiddleware
const (
	UserIDKey  = "userID"
	SessionKey = "session"
)

// JWTAuthMiddleware validates JWT tokens, loads the caller's session and
// re-reads the account. A valid token whose session was closed or whose
// account was deleted is rejected.
func JWTAuthMiddleware(secret string, store session.Store, accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		sess, err := store.Load(c.Request.Context(), claims.SessionID) // Load session state
		if errors.Is(err, session.ErrNotFound) || (err == nil && sess.AccountID != claims.UserID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session ended, please log in again"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": claims.UserID, // User ID
				"error":   err.Error(),   // Error message
			}).Error("Failed to load session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			return
		}
		acct, err := accounts.Get(c.Request.Context(), claims.UserID) // Fetch user from database
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = store.Delete(c.Request.Context(), sess.ID) // Drop the orphaned cart
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session ended, please log in again"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": claims.UserID, // User ID
				"error":   err.Error(),   // Error message
			}).Error("Failed to load account")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
			return
		}
		c.Set(UserIDKey, claims.UserID) // Store userID in context
		c.Set(SessionKey, sess)         // Store session in context
		c.Set(AccountKey, acct)         // Current account row
		c.Next()                        // Proceed to the next handler
	}
}

// CurrentSession returns the session loaded by JWTAuthMiddleware
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}
