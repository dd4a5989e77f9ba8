package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hotelhub/hotelhub/internal/config"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTRoundTrip(t *testing.T) {
	provider := NewProvider(config.GetDefaultConfig())

	token, err := provider.GenerateToken("user_1", types.UserRoleEmployee)
	require.NoError(t, err)

	claims, err := provider.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, types.UserRoleEmployee, claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	cfg := config.GetDefaultConfig()
	provider := NewProvider(cfg)
	secret := cfg.Auth.Secret
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong_secret", token: sign(t, "other-secret", jwt.MapClaims{"user_id": "user_1", "exp": future})},
		{name: "expired", token: sign(t, secret, jwt.MapClaims{"user_id": "user_1", "exp": time.Now().Add(-time.Hour).Unix()})},
		{name: "missing_user", token: sign(t, secret, jwt.MapClaims{"role": "admin", "exp": future})},
		{name: "unknown_role", token: sign(t, secret, jwt.MapClaims{"user_id": "user_1", "role": "owner", "exp": future})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.ValidateToken(context.Background(), tt.token)
			assert.True(t, ierr.IsUnauthorized(err), "unexpected error %v", err)
		})
	}
}

func TestTokenWithoutRoleActsAsGuest(t *testing.T) {
	cfg := config.GetDefaultConfig()
	token := sign(t, cfg.Auth.Secret, jwt.MapClaims{"user_id": "user_2", "exp": time.Now().Add(time.Hour).Unix()})

	claims, err := NewProvider(cfg).ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, types.UserRoleClient, claims.Role)
}
