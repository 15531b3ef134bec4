package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "Simple password", password: "password123"},
		{name: "Password with symbols", password: "p@$$w0rd!#%"},
		{name: "Long password", password: "a-fairly-long-password-with-many-characters"},
		{name: "Unicode password", password: "парола-строител"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
		})
	}
}

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	// bcrypt salts every hash, so the same input never repeats.
	hash1, err := HashPassword("password123")
	require.NoError(t, err)
	hash2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword(t *testing.T) {
	password := "correct-horse-battery"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "Correct password", password: password, want: true},
		{name: "Wrong password", password: "wrong-password", want: false},
		{name: "Empty password", password: "", want: false},
		{name: "Case sensitive", password: "Correct-Horse-Battery", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(hash, tt.password))
		})
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "password123"))
}

func TestGenerateRandomCode(t *testing.T) {
	code, err := GenerateRandomCode(16)
	require.NoError(t, err)
	assert.Len(t, code, 32) // hex doubles the byte count

	other, err := GenerateRandomCode(16)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}
