package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken(t *testing.T) {
	cfg := JWTConfig{Secret: "test-secret", ExpiryHours: 1}

	userID := uuid.New()
	sessionID := uuid.New()

	t.Run("sign and verify roundtrip", func(t *testing.T) {
		token, err := SignAccessToken(cfg, userID, "clinician", sessionID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := VerifyAccessToken(cfg, token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "clinician", claims.Role)
		assert.Equal(t, sessionID.String(), claims.SessionID)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := SignAccessToken(cfg, userID, "clinician", sessionID)
		require.NoError(t, err)

		_, err = VerifyAccessToken(JWTConfig{Secret: "other-secret", ExpiryHours: 1}, token)
		assert.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token, err := SignAccessToken(JWTConfig{Secret: cfg.Secret, ExpiryHours: -1}, userID, "clinician", sessionID)
		require.NoError(t, err)

		_, err = VerifyAccessToken(cfg, token)
		assert.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := VerifyAccessToken(cfg, "not.a.token")
		assert.Error(t, err)
	})
}
