package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("Str0ng!Passw0rd")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("Str0ng!Passw0rd", hash))
	assert.False(t, VerifyPassword("Str0ng!Passw0rc", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPassword_EncodesCost(t *testing.T) {
	hash, err := HashPassword("omgMPC")
	require.NoError(t, err)

	// bcrypt hashes carry their own salt and work factor
	assert.True(t, strings.HasPrefix(hash, "$2a$12$"), "hash %q should encode cost 12", hash)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	h1, err := HashPassword("password")
	require.NoError(t, err)
	h2, err := HashPassword("password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("password", h1))
	assert.True(t, VerifyPassword("password", h2))
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("password", "not-a-bcrypt-hash"))
}
