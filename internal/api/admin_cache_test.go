package api

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisForTest connects to REDIS_ADDR, skipping the test when none is reachable
func redisForTest(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis unavailable: %v", err)
	}
	require.NoError(t, rdb.Del(context.Background(), ordersCacheKey).Err())
	t.Cleanup(func() {
		rdb.Del(context.Background(), ordersCacheKey)
		rdb.Close()
	})
	return rdb
}

func TestUserChangesDropOrderListCache(t *testing.T) {
	rdb := redisForTest(t)
	r, _ := newTestServer(t, func(d *Deps) { d.Redis = rdb })
	admin := login(t, r, "admin", "1234")
	token := login(t, r, "employee", "5678")
	no := false

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/cart/drinks", token, AddDrinkRequest{Name: "Pepsi"}).Code)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/orders", token, nil).Code)

	list := decode[OrderList](t, do(t, r, http.MethodGet, "/admin/orders", admin, nil))
	assert.False(t, list.Cached)
	list = decode[OrderList](t, do(t, r, http.MethodGet, "/admin/orders", admin, nil))
	require.True(t, list.Cached)
	assert.Equal(t, "employee", list.Orders[0].Username)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/admin/users/employee", admin, UserRequest{Username: "cashier", PIN: "5678", IsAdmin: &no}).Code)
	list = decode[OrderList](t, do(t, r, http.MethodGet, "/admin/orders", admin, nil))
	assert.False(t, list.Cached)
	assert.Equal(t, "cashier", list.Orders[0].Username)

	require.True(t, decode[OrderList](t, do(t, r, http.MethodGet, "/admin/orders", admin, nil)).Cached)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/admin/users/cashier", admin, nil).Code)
	list = decode[OrderList](t, do(t, r, http.MethodGet, "/admin/orders", admin, nil))
	assert.False(t, list.Cached)
	assert.Equal(t, "", list.Orders[0].Username)
}
