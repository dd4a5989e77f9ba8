package site

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/types"
)

type Repository interface {
	Create(ctx context.Context, site *Site) error
	Get(ctx context.Context, id string) (*Site, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*Site, error)
}
