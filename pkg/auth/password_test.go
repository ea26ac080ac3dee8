package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	for _, plain := range []string{"a", "correct horse battery staple", "pässwörd-☕", strings.Repeat("x", 200)} {
		hash, err := HashPassword(plain)
		require.NoError(t, err)

		assert.True(t, CheckPassword(hash, plain), "password %q should verify", plain)
		assert.False(t, CheckPassword(hash, plain+"!"), "wrong password for %q must not verify", plain)
	}
}

func TestHashPasswordEncodesKeyAndSalt(t *testing.T) {
	hash, err := HashPassword("latte")
	require.NoError(t, err)

	key, salt, ok := strings.Cut(hash, ".")
	require.True(t, ok)
	assert.Len(t, key, scryptKeyLen*2)
	assert.Len(t, salt, saltLen*2)
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	a, err := HashPassword("latte")
	require.NoError(t, err)
	b, err := HashPassword("latte")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, CheckPassword(a, "latte"))
	assert.True(t, CheckPassword(b, "latte"))
}

func TestCheckPasswordRejectsMalformed(t *testing.T) {
	for _, stored := range []string{"", "nodot", "zz.00", "abcd.", ".abcd"} {
		assert.False(t, CheckPassword(stored, "latte"), "stored %q", stored)
	}
}
