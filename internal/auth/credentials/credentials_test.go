package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestVerifyPassword(t *testing.T) {
	v := NewVerifier("copperkoi", hashOf(t, "correct horse"))

	assert.True(t, v.VerifyPassword("correct horse"))
	assert.False(t, v.VerifyPassword("wrong horse"))
	assert.False(t, v.VerifyPassword(""))
}

func TestVerifyPasswordFailsClosed(t *testing.T) {
	t.Run("no hash configured", func(t *testing.T) {
		v := NewVerifier("copperkoi", "")
		assert.False(t, v.VerifyPassword("anything"))
	})

	t.Run("non-bcrypt hash", func(t *testing.T) {
		v := NewVerifier("copperkoi", "sha256:deadbeef")
		assert.False(t, v.VerifyPassword("anything"))
	})

	t.Run("malformed bcrypt hash does not panic", func(t *testing.T) {
		v := NewVerifier("copperkoi", "$2b$12$truncated")
		assert.False(t, v.VerifyPassword("anything"))
	})
}

func TestVerifyUsername(t *testing.T) {
	v := NewVerifier("copperkoi", "")

	assert.True(t, v.VerifyUsername("copperkoi"))
	assert.True(t, v.VerifyUsername("  CopperKoi "))
	assert.False(t, v.VerifyUsername("copper koi"))
	assert.False(t, v.VerifyUsername(""))
}
