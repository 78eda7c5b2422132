package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.NoError(t, VerifyPassword(hash, "password"))
	assert.Error(t, VerifyPassword(hash, "wrong-password"))
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"lowercases domain", "test@GMAiL.COm", "test@gmail.com"},
		{"keeps local part case", "Test@GMAIL.COM", "Test@gmail.com"},
		{"already normalized", "test@gmail.com", "test@gmail.com"},
		{"trims whitespace", "  test@gmail.com ", "test@gmail.com"},
		{"no at sign", "not-an-email", "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.email))
		})
	}
}
