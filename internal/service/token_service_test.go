package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService(t *testing.T) {
	svc := NewJWTTokenService("test-secret-at-least-32-characters!", time.Hour, "loyalty-ledger")

	t.Run("round trip recovers the address", func(t *testing.T) {
		address := addr(7)
		token, expiry, err := svc.Generate(address)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, address, claims.Address)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTTokenService("a-completely-different-secret-value", time.Hour, "loyalty-ledger")
		token, _, err := other.Generate(addr(7))
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		shortLived := NewJWTTokenService("test-secret-at-least-32-characters!", -time.Minute, "loyalty-ledger")
		token, _, err := shortLived.Generate(addr(7))
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.Validate("not.a.jwt")
		assert.Error(t, err)
	})
}
