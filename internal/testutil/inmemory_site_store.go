package testutil

import (
	"context"
	"strings"

	"github.com/hotelhub/hotelhub/internal/domain/room"
	"github.com/hotelhub/hotelhub/internal/domain/site"
	"github.com/hotelhub/hotelhub/internal/types"
)

// InMemorySiteStore implements site.Repository
type InMemorySiteStore struct {
	*InMemoryStore[*site.Site]
}

func NewInMemorySiteStore() *InMemorySiteStore {
	return &InMemorySiteStore{
		InMemoryStore: NewInMemoryStore[*site.Site](),
	}
}

func (s *InMemorySiteStore) Create(ctx context.Context, st *site.Site) error {
	err := s.InMemoryStore.CreateUnique(ctx, st.ID, clone(st), func(existing *site.Site) bool {
		return strings.EqualFold(existing.Name, st.Name)
	})
	return withHint(err, "A site with this name already exists")
}

func (s *InMemorySiteStore) Get(ctx context.Context, id string) (*site.Site, error) {
	st, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFound("site", id)
	}
	return clone(st), nil
}

func (s *InMemorySiteStore) List(ctx context.Context, filter *types.QueryFilter) ([]*site.Site, error) {
	items, err := s.InMemoryStore.List(ctx, filter, func(st *site.Site) bool {
		return matchesStatus(filter, st.Status)
	}, func(a, b *site.Site) bool {
		return byCreatedAtDesc(a.BaseModel, b.BaseModel)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

// InMemoryRoomTypeStore implements room.TypeRepository
type InMemoryRoomTypeStore struct {
	*InMemoryStore[*room.RoomType]
}

func NewInMemoryRoomTypeStore() *InMemoryRoomTypeStore {
	return &InMemoryRoomTypeStore{
		InMemoryStore: NewInMemoryStore[*room.RoomType](),
	}
}

func (s *InMemoryRoomTypeStore) Create(ctx context.Context, rt *room.RoomType) error {
	err := s.InMemoryStore.CreateUnique(ctx, rt.ID, clone(rt), func(existing *room.RoomType) bool {
		return strings.EqualFold(existing.Name, rt.Name)
	})
	return withHint(err, "A room type with this name already exists")
}

func (s *InMemoryRoomTypeStore) Get(ctx context.Context, id string) (*room.RoomType, error) {
	rt, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFound("room type", id)
	}
	return clone(rt), nil
}

func (s *InMemoryRoomTypeStore) List(ctx context.Context, filter *types.QueryFilter) ([]*room.RoomType, error) {
	items, err := s.InMemoryStore.List(ctx, filter, func(rt *room.RoomType) bool {
		return matchesStatus(filter, rt.Status)
	}, func(a, b *room.RoomType) bool {
		return byCreatedAtDesc(a.BaseModel, b.BaseModel)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}
