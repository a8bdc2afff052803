package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashService(t *testing.T) {
	svc := NewArgon2HashService()

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := svc.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

		ok, err := svc.Verify("correct horse battery staple", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password fails verification", func(t *testing.T) {
		hash, err := svc.Hash("password-one")
		require.NoError(t, err)

		ok, err := svc.Verify("password-two", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("same password yields different hashes", func(t *testing.T) {
		first, err := svc.Hash("password")
		require.NoError(t, err)
		second, err := svc.Hash("password")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("malformed hash is rejected", func(t *testing.T) {
		_, err := svc.Verify("password", "$bcrypt$whatever")
		assert.Error(t, err)
	})
}
