package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"pizza_pos/internal/account"    // Account service
	"pizza_pos/internal/domain"     // Domain errors
	"pizza_pos/internal/middleware" // Session lookup
	"pizza_pos/internal/session"    // Session store
	"pizza_pos/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	PIN      string `json:"pin" binding:"required"`      // PIN must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string      `json:"token"` // JWT token
	User  UserSummary `json:"user"`  // Signed in account
}

// UserSummary is the public view of an account
type UserSummary struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	IsAdmin  bool   `json:"is_admin"` // Administrator flag
}

func summarize(a domain.Account) UserSummary {
	return UserSummary{ID: a.ID, Username: a.Username, IsAdmin: a.IsAdmin}
}

// LoginHandler authenticates a user, opens a session and returns a JWT token
func LoginHandler(accounts *account.Service, store session.Store, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter both username and PIN"})
			return
		}
		acct, err := accounts.Authenticate(c.Request.Context(), req.Username, req.PIN)
		if domain.IsAuthFailure(err) {
			// Same reply whichever part was wrong
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or PIN"})
			return
		}
		if err != nil {
			respondError(c, err, "Login")
			return
		}
		sess := session.New(acct) // Fresh session with an empty cart
		if !saveSession(c, store, sess) {
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(acct.ID, sess.ID, jwtSecret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  acct.ID,       // User ID
			"username": acct.Username, // Username
		}).Info("Login")
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: summarize(acct)})
	}
}

// LogoutHandler closes the caller's session, discarding the cart
func LogoutHandler(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.CurrentSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := store.Delete(c.Request.Context(), sess.ID); err != nil {
			respondError(c, err, "Logout")
			return
		}
		logrus.WithField("user_id", sess.AccountID).Info("Logout")
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
