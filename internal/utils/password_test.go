package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// MinCost keeps the test fast; production uses the configured cost.
	hash, err := HashPassword("Sup3r-secret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Sup3r-secret", hash)

	require.True(t, VerifyPassword(hash, "Sup3r-secret"))
	require.False(t, VerifyPassword(hash, "sup3r-secret"))
	require.False(t, VerifyPassword(hash, ""))
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	require.False(t, VerifyPassword("not-a-bcrypt-hash", "whatever"))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	h1, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
