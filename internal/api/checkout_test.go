package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pizza_pos/internal/domain"
	"pizza_pos/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails Save while failSave is set
type flakyStore struct {
	session.Store
	failSave atomic.Bool
}

func (f *flakyStore) Save(ctx context.Context, s *session.Session) error {
	if f.failSave.Load() {
		return errors.New("store unavailable")
	}
	return f.Store.Save(ctx, s)
}

func countOrders(t *testing.T, d Deps) int64 {
	t.Helper()
	n, err := d.OrderLog.CountOrders(context.Background())
	require.NoError(t, err)
	return n
}

func TestCheckoutSaveFailureClosesSession(t *testing.T) {
	store := &flakyStore{Store: session.NewMemoryStore(time.Hour)}
	r, d := newTestServer(t, func(d *Deps) { d.Sessions = store })
	token := login(t, r, "employee", "5678")
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/cart/drinks", token, AddDrinkRequest{Name: "Water"}).Code)

	store.failSave.Store(true)
	w := do(t, r, http.MethodPost, "/orders", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[struct {
		Order        OrderResponse `json:"order"`
		SessionEnded bool          `json:"session_ended"`
	}](t, w)
	assert.True(t, resp.SessionEnded)
	assert.Equal(t, "1.62", resp.Order.Total)
	store.failSave.Store(false)

	// The cart that was already ordered cannot be sent again
	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodPost, "/orders", token, nil).Code)
	assert.Equal(t, int64(1), countOrders(t, d))

	fresh := login(t, r, "employee", "5678")
	assert.Empty(t, decode[CartResponse](t, do(t, r, http.MethodGet, "/cart", fresh, nil)).Items)
}

func TestConcurrentCheckoutStoresOneOrder(t *testing.T) {
	r, d := newTestServer(t)
	token := login(t, r, "employee", "5678")
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/cart/pizzas", token, AddPizzaRequest{Name: "Supreme", Size: "large"}).Code)

	const workers = 8
	codes := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = do(t, r, http.MethodPost, "/orders", token, nil).Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusBadRequest, code) // Cart already empty
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, int64(1), countOrders(t, d))
}

func TestDeletedAccountLosesSession(t *testing.T) {
	r, d := newTestServer(t)
	admin := login(t, r, "admin", "1234")
	token := login(t, r, "employee", "5678")
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/cart/drinks", token, AddDrinkRequest{Name: "Sprite"}).Code)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/admin/users/employee", admin, nil).Code)

	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/cart", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodPost, "/orders", token, nil).Code)
	assert.Equal(t, int64(0), countOrders(t, d))
}

func TestSessionLocksReleaseEntries(t *testing.T) {
	l := newSessionLocks()
	unlock := l.lock("a")
	done := make(chan struct{})
	go func() {
		l.lock("a")()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second holder got the lock while the first held it")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	<-done

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}

func TestRespondErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/fail", func(c *gin.Context) {
		respondError(c, errFor(c.Query("kind")), "Test")
	})

	tests := []struct {
		kind string
		want int
	}{
		{"credentials", http.StatusUnauthorized},
		{"pin", http.StatusBadRequest},
		{"missing", http.StatusNotFound},
		{"duplicate", http.StatusConflict},
		{"self", http.StatusForbidden},
		{"plain", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, r, http.MethodGet, "/fail?kind="+tt.kind, "", nil).Code)
		})
	}
}

func errFor(kind string) error {
	switch kind {
	case "credentials":
		return domain.ErrInvalidCredentials
	case "pin":
		return domain.ErrInvalidPinFormat
	case "missing":
		return domain.ErrAccountNotFound
	case "duplicate":
		return domain.ErrDuplicateUsername
	case "self":
		return domain.ErrSelfDeletion
	}
	return errors.New("disk full")
}
