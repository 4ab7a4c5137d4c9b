package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"pizza_pos/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	s := New(domain.Account{ID: 3, Username: "employee"})
	require.NotEmpty(t, s.ID)
	require.NoError(t, store.Save(ctx, s))

	s.Cart.Lines = append(s.Cart.Lines, domain.LineItem{Kind: domain.LineDrink, Description: "Water", Price: decimal.RequireFromString("1.50")})
	s.Draft = s.Draft.Increment("Bacon")

	// Unsaved changes are not visible
	loaded, err := store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Cart.Len())

	require.NoError(t, store.Save(ctx, s))
	loaded, err = store.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), loaded.AccountID)
	require.Equal(t, 1, loaded.Cart.Len())
	assert.Equal(t, "1.50", domain.Money(loaded.Cart.Lines[0].Price))
	assert.Equal(t, 1, loaded.Draft.Toppings.Count("Bacon"))

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Load(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	s := New(domain.Account{ID: 1, Username: "admin", IsAdmin: true})
	require.NoError(t, store.Save(ctx, s))

	now = now.Add(59 * time.Second)
	_, err := store.Load(ctx, s.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = store.Load(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSessionsAreIndependent(t *testing.T) {
	a := New(domain.Account{ID: 1, Username: "admin"})
	b := New(domain.Account{ID: 1, Username: "admin"})
	assert.NotEqual(t, a.ID, b.ID)
}
