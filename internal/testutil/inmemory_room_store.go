package testutil

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/room"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
)

// InMemoryRoomStore implements room.Repository
type InMemoryRoomStore struct {
	*InMemoryStore[*room.Room]
}

func NewInMemoryRoomStore() *InMemoryRoomStore {
	return &InMemoryRoomStore{
		InMemoryStore: NewInMemoryStore[*room.Room](),
	}
}

func (s *InMemoryRoomStore) Create(ctx context.Context, r *room.Room) error {
	err := s.InMemoryStore.CreateUnique(ctx, r.ID, clone(r), func(existing *room.Room) bool {
		return existing.Number == r.Number
	})
	return withHint(err, "A room with this number already exists")
}

func (s *InMemoryRoomStore) Get(ctx context.Context, id string) (*room.Room, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFound("room", id)
	}
	return clone(r), nil
}

func (s *InMemoryRoomStore) List(ctx context.Context, filter *types.RoomFilter) ([]*room.Room, error) {
	if filter == nil {
		filter = types.NewRoomFilter()
	}
	items, err := s.InMemoryStore.List(ctx, filter.QueryFilter, roomMatcher(filter), func(a, b *room.Room) bool {
		return byCreatedAtDesc(a.BaseModel, b.BaseModel)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryRoomStore) Count(ctx context.Context, filter *types.RoomFilter) (int, error) {
	if filter == nil {
		filter = types.NewRoomFilter()
	}
	return s.InMemoryStore.Count(ctx, roomMatcher(filter))
}

func (s *InMemoryRoomStore) Update(ctx context.Context, r *room.Room) error {
	if err := s.InMemoryStore.Update(ctx, r.ID, clone(r)); err != nil {
		return notFound("room", r.ID)
	}
	return nil
}

func roomMatcher(filter *types.RoomFilter) MatchFunc[*room.Room] {
	return func(r *room.Room) bool {
		if !matchesStatus(filter.QueryFilter, r.Status) {
			return false
		}
		if len(filter.RoomIDs) > 0 && !lo.Contains(filter.RoomIDs, r.ID) {
			return false
		}
		if filter.SiteID != "" && r.SiteID != filter.SiteID {
			return false
		}
		if filter.RoomTypeID != "" && r.RoomTypeID != filter.RoomTypeID {
			return false
		}
		if filter.Availability != nil && r.Availability != *filter.Availability {
			return false
		}
		return true
	}
}
