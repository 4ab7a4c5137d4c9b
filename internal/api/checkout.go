package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"sync"     // Per-session checkout locks
	"time"     // Lock lifetime

	"pizza_pos/internal/middleware" // Session lookup
	"pizza_pos/internal/order"      // Order model
	"pizza_pos/internal/session"    // Session store
	"pizza_pos/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const checkoutLockTTL = 30 * time.Second // Upper bound on one checkout across instances

// sessionLocks serializes checkouts of the same session in this process
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int // Holders and waiters
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// lock blocks until id is free and returns the matching unlock
func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id) // Last one out
		}
		l.mu.Unlock()
	}
}

// acquireRedisLock claims the checkout of id for this instance. A nil client
// always succeeds.
func acquireRedisLock(ctx context.Context, rdb *redis.Client, id string) (func(), bool, error) {
	if rdb == nil {
		return func() {}, true, nil // Single instance
	}
	key := "checkout:" + id // Checkout lock key
	ok, err := rdb.SetNX(ctx, key, 1, checkoutLockTTL).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	return func() { _ = rdb.Del(context.Background(), key).Err() }, true, nil
}

// CheckoutHandler finalizes the cart into an order. Checkouts of one session
// run one at a time against the stored session, so a repeated or concurrent
// request finds the cart already empty.
func CheckoutHandler(model *order.Model, store session.Store, rdb *redis.Client) gin.HandlerFunc {
	locks := newSessionLocks()
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		current, ok := middleware.CurrentSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		unlock := locks.lock(current.ID)
		defer unlock()
		release, ok, err := acquireRedisLock(ctx, rdb, current.ID)
		if err != nil {
			respondError(c, err, "Order")
			return
		}
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress"})
			return
		}
		defer release()

		// Reload under the lock so an earlier checkout's cleared cart is seen
		sess, err := store.Load(ctx, current.ID)
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session ended, please log in again"})
			return
		}
		if err != nil {
			respondError(c, err, "Order")
			return
		}
		o, err := model.Finalize(ctx, sess.AccountID, &sess.Cart)
		if err != nil {
			respondError(c, err, "Order")
			return
		}
		// Invalidate the order list cache
		_ = utils.DeleteCache(context.Background(), rdb, ordersCacheKey)

		if err := store.Save(ctx, sess); err != nil {
			// The order is committed but the stored cart still holds it. Close
			// the session so the cart cannot be submitted again.
			fields := logrus.Fields{
				"order_id":   o.ID,           // Committed order
				"user_id":    sess.AccountID, // Session owner
				"session_id": sess.ID,        // Closed session
				"error":      err.Error(),    // Error message
			}
			if derr := store.Delete(ctx, sess.ID); derr != nil {
				fields["delete_error"] = derr.Error() // Session could not be closed either
			}
			logrus.WithFields(fields).Error("Failed to clear cart after order, session closed")
			c.JSON(http.StatusCreated, gin.H{
				"message":       "Order processed successfully, please log in again",
				"order":         orderResponse(o),
				"session_ended": true,
			})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order processed successfully", "order": orderResponse(o)})
	}
}
