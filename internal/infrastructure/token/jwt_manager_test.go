package token

import (
	"testing"
	"time"

	domain "realty/backend/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndDecode(t *testing.T) {
	manager := NewJWTManager("signing-secret", time.Hour, "realty")

	tokenString, err := manager.Issue("brian", "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := manager.Decode(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "brian", claims.Name)
	assert.Equal(t, "user-1", claims.UserID)
	assert.False(t, claims.IssuedAt.IsZero())
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestJWTManager_DecodeExpired(t *testing.T) {
	manager := NewJWTManager("signing-secret", -time.Minute, "realty")

	tokenString, err := manager.Issue("brian", "user-1")
	require.NoError(t, err)

	_, err = manager.Decode(tokenString)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestJWTManager_DecodeInvalid(t *testing.T) {
	manager := NewJWTManager("signing-secret", time.Hour, "realty")
	other := NewJWTManager("different-secret", time.Hour, "realty")

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage input",
			token: func(t *testing.T) string { return "not.a.token" },
		},
		{
			name: "wrong signing secret",
			token: func(t *testing.T) string {
				tok, err := other.Issue("brian", "user-1")
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "tampered payload",
			token: func(t *testing.T) string {
				tok, err := manager.Issue("brian", "user-1")
				require.NoError(t, err)
				return tok[:len(tok)-4] + "AAAA"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Decode(tt.token(t))
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}
