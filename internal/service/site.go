package service

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/domain/room"
	"github.com/hotelhub/hotelhub/internal/domain/site"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
)

// SiteService manages hotel locations and the room categories shared by them
type SiteService interface {
	CreateSite(ctx context.Context, req dto.CreateSiteRequest) (*dto.SiteResponse, error)
	GetSite(ctx context.Context, id string) (*dto.SiteResponse, error)
	ListSites(ctx context.Context, filter *types.QueryFilter) (*dto.ListSitesResponse, error)
	CreateRoomType(ctx context.Context, req dto.CreateRoomTypeRequest) (*dto.RoomTypeResponse, error)
	ListRoomTypes(ctx context.Context, filter *types.QueryFilter) (*dto.ListRoomTypesResponse, error)
}

type siteService struct {
	ServiceParams
}

func NewSiteService(params ServiceParams) SiteService {
	return &siteService{
		ServiceParams: params,
	}
}

func (s *siteService) CreateSite(ctx context.Context, req dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st := req.ToSite(ctx)
	if err := s.SiteRepo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.Logger.Infow("site created", "site_id", st.ID, "name", st.Name)
	return &dto.SiteResponse{Site: st}, nil
}

func (s *siteService) GetSite(ctx context.Context, id string) (*dto.SiteResponse, error) {
	st, err := s.SiteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SiteResponse{Site: st}, nil
}

func (s *siteService) ListSites(ctx context.Context, filter *types.QueryFilter) (*dto.ListSitesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	sites, err := s.SiteRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(sites, func(st *site.Site, _ int) *dto.SiteResponse {
		return &dto.SiteResponse{Site: st}
	})
	response := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *siteService) CreateRoomType(ctx context.Context, req dto.CreateRoomTypeRequest) (*dto.RoomTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rt := req.ToRoomType(ctx)
	if err := s.RoomTypeRepo.Create(ctx, rt); err != nil {
		return nil, err
	}

	s.Logger.Infow("room type created", "room_type_id", rt.ID, "name", rt.Name)
	return &dto.RoomTypeResponse{RoomType: rt}, nil
}

func (s *siteService) ListRoomTypes(ctx context.Context, filter *types.QueryFilter) (*dto.ListRoomTypesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	roomTypes, err := s.RoomTypeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(roomTypes, func(rt *room.RoomType, _ int) *dto.RoomTypeResponse {
		return &dto.RoomTypeResponse{RoomType: rt}
	})
	response := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &response, nil
}
