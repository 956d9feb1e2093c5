package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/lineup-service/internal/domain"
)

func TestAuthService_RoundTrip(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)

	token, err := svc.IssueToken(42, "a@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, &domain.Claims{UserID: 42, Email: "a@example.com"}, claims)
}

func TestAuthService_Rejects(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)
	token, err := svc.IssueToken(42, "a@example.com")
	require.NoError(t, err)

	t.Run("foreign secret", func(t *testing.T) {
		_, err := NewAuthService("other", time.Hour).ValidateToken(token)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewAuthService("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.ValidateToken(token)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, h.Verify("secret", hash))
	assert.False(t, h.Verify("wrong", hash))
}
