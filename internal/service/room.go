package service

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/cache"
	"github.com/hotelhub/hotelhub/internal/domain/room"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
)

type RoomService interface {
	CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*dto.RoomResponse, error)
	GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context, filter *types.RoomFilter) (*dto.ListRoomsResponse, error)
	UpdateRoom(ctx context.Context, id string, req dto.UpdateRoomRequest) (*dto.RoomResponse, error)
}

type roomService struct {
	ServiceParams
}

func NewRoomService(params ServiceParams) RoomService {
	return &roomService{
		ServiceParams: params,
	}
}

func (s *roomService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.SiteRepo.Get(ctx, req.SiteID); err != nil {
		return nil, err
	}
	if _, err := s.RoomTypeRepo.Get(ctx, req.RoomTypeID); err != nil {
		return nil, err
	}

	rm := req.ToRoom(ctx)
	if err := s.RoomRepo.Create(ctx, rm); err != nil {
		return nil, err
	}

	s.Logger.Infow("room created", "room_id", rm.ID, "number", rm.Number, "site_id", rm.SiteID)
	return &dto.RoomResponse{Room: rm}, nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error) {
	if id == "" {
		return nil, ierr.NewError("room_id is required").
			WithHint("Room ID is required").
			Mark(ierr.ErrValidation)
	}

	rm, err := getCachedRoom(ctx, s.ServiceParams, id)
	if err != nil {
		return nil, err
	}
	return &dto.RoomResponse{Room: rm}, nil
}

func (s *roomService) ListRooms(ctx context.Context, filter *types.RoomFilter) (*dto.ListRoomsResponse, error) {
	if filter == nil {
		filter = types.NewRoomFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rooms, err := s.RoomRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.RoomRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(rooms, func(rm *room.Room, _ int) *dto.RoomResponse {
		return &dto.RoomResponse{Room: rm}
	})
	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id string, req dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rm, err := s.RoomRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomTypeID != nil {
		if _, err := s.RoomTypeRepo.Get(ctx, *req.RoomTypeID); err != nil {
			return nil, err
		}
		rm.RoomTypeID = *req.RoomTypeID
	}
	if req.NightlyPrice != nil {
		rm.NightlyPrice = *req.NightlyPrice
	}
	if req.Availability != nil {
		rm.Availability = *req.Availability
	}
	if err := rm.Validate(); err != nil {
		return nil, err
	}

	rm.UpdatedBy = types.GetUserID(ctx)
	if err := s.RoomRepo.Update(ctx, rm); err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixRoom, id))

	s.Logger.Infow("room updated", "room_id", rm.ID, "nightly_price", rm.NightlyPrice.String(), "availability", rm.Availability)
	return &dto.RoomResponse{Room: rm}, nil
}

// getCachedRoom reads a room through the cache. Callers get their own copy.
func getCachedRoom(ctx context.Context, params ServiceParams, id string) (*room.Room, error) {
	key := cache.GenerateKey(cache.PrefixRoom, id)
	if params.Cache != nil {
		if cached, found := params.Cache.Get(ctx, key); found {
			if rm, ok := cached.(room.Room); ok {
				return &rm, nil
			}
		}
	}

	rm, err := params.RoomRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Cache != nil {
		params.Cache.Set(ctx, key, *rm, 0)
	}
	return rm, nil
}
