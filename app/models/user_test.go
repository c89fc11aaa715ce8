package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordPair(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		wantErr  error
	}{
		{"matching pair", "secret1", "secret1", nil},
		{"exactly minimum length", "123456", "123456", nil},
		{"too short", "12345", "12345", ErrPasswordTooShort},
		{"confirmation differs", "secret1", "secret2", ErrPasswordMismatch},
		{"empty confirmation", "secret1", "", ErrPasswordMismatch},
		{"both empty", "", "", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordPair(tt.password, tt.confirm)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCreateUserDefaults(t *testing.T) {
	u, err := CreateUser("somchai", "somchai@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, ROLE_USER, u.Role)
	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.True(t, u.IsActive())
	assert.False(t, u.IsAdmin())

	// The stored value is a bcrypt hash, never the raw password.
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, u.CheckPassword("secret1"))
	assert.False(t, u.CheckPassword("wrong"))
}
