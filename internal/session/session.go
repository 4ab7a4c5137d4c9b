// Package session keeps the state of logged-in terminals: who is signed in,
// their cart and the custom pizza being composed.
package session

import (
	"context" // Context for store calls
	"errors"  // Sentinel errors
	"time"    // Session timestamps

	"pizza_pos/internal/domain" // Account model
	"pizza_pos/internal/order"  // Cart and draft

	"github.com/google/uuid" // Session IDs
)

// ErrNotFound means the session was closed or has expired
var ErrNotFound = errors.New("session not found")

// Session is one logged-in user's state
type Session struct {
	ID        string           `json:"id"`
	AccountID uint             `json:"account_id"`
	Username  string           `json:"username"`
	IsAdmin   bool             `json:"is_admin"`
	Cart      order.Cart       `json:"cart"`
	Draft     order.PizzaDraft `json:"draft"`
	StartedAt time.Time        `json:"started_at"`
}

// New starts a session with an empty cart for acct
func New(acct domain.Account) *Session {
	return &Session{
		ID:        uuid.NewString(),
		AccountID: acct.ID,
		Username:  acct.Username,
		IsAdmin:   acct.IsAdmin,
		StartedAt: time.Now().UTC(),
	}
}

// Store holds sessions between requests
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
