package room

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/types"
)

type Repository interface {
	Create(ctx context.Context, room *Room) error
	Get(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter *types.RoomFilter) ([]*Room, error)
	Count(ctx context.Context, filter *types.RoomFilter) (int, error)
	Update(ctx context.Context, room *Room) error
}

type TypeRepository interface {
	Create(ctx context.Context, roomType *RoomType) error
	Get(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*RoomType, error)
}
