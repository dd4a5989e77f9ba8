package auth

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/config"
	"github.com/hotelhub/hotelhub/internal/types"
)

// Claims is the identity carried by a bearer token
type Claims struct {
	UserID string
	Role   types.UserRole
}

type Provider interface {
	GenerateToken(userID string, role types.UserRole) (string, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewJWTAuth(cfg)
}
