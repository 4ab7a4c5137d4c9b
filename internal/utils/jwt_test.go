package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	tok, err := GenerateJWT(42, "sess-1", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestJWTRejects(t *testing.T) {
	tok, err := GenerateJWT(1, "s", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(tok, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT(1, "s", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.Error(t, err)

	noSession, err := GenerateJWT(1, "", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(noSession, "secret")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, SessionID: "s"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseJWT(unsigned, "secret")
	assert.Error(t, err)

	_, err = ParseJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestCacheWithoutClient(t *testing.T) {
	ctx := context.Background()
	var dest map[string]int
	found, err := GetCache(ctx, nil, "k", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, "k", map[string]int{"a": 1}, time.Minute))
	assert.NoError(t, DeleteCache(ctx, nil, "k"))
}
