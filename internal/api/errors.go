package api

import (
	"net/http" // HTTP status codes

	"pizza_pos/internal/domain"  // Domain errors
	"pizza_pos/internal/session" // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// respondError maps a domain error to a status code and JSON body
func respondError(c *gin.Context, err error, action string) {
	status := http.StatusInternalServerError // Default for unexpected failures
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindAuthorization:
		status = http.StatusForbidden
	case domain.KindAuthentication:
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"action": action,       // Failed operation
			"path":   c.FullPath(), // Route
			"error":  err.Error(),  // Error message
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": action + " failed"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// saveSession writes the session back, replying 500 on failure
func saveSession(c *gin.Context, store session.Store, s *session.Session) bool {
	if err := store.Save(c.Request.Context(), s); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": s.AccountID, // Session owner
			"error":   err.Error(), // Error message
		}).Error("Failed to save session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return false
	}
	return true
}
