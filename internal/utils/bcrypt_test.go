package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHashPassword(t *testing.T) {
	h := newTestHasher(t)
	password := "password123"
	hashedPassword, err := h.Hash(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestHashPassword_FreshSaltEachCall(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("password123")
	require.NoError(t, err)
	second, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	h := newTestHasher(t)
	hashedPassword, _ := h.Hash("password123")

	ok, err := h.Verify("password123", hashedPassword)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrongpassword", hashedPassword)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	h := newTestHasher(t)

	ok, err := h.Verify("password123", "invalidhash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCorruptCredential)
}

func TestNewPasswordHasher_Cost(t *testing.T) {
	h, err := NewPasswordHasher(5)
	require.NoError(t, err)
	assert.Equal(t, 5, h.Cost())

	hashed, err := h.Hash("password123")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)

	h, err = NewPasswordHasher(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, h.Cost())
}

func TestHashPassword_TooLong(t *testing.T) {
	h := newTestHasher(t)
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}

	_, err := h.Hash(string(long))
	assert.Error(t, err)
}
