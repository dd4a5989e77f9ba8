package dto

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/room"
	"github.com/hotelhub/hotelhub/internal/domain/site"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/hotelhub/hotelhub/internal/validator"
)

type CreateSiteRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

func (r *CreateSiteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateSiteRequest) ToSite(ctx context.Context) *site.Site {
	return &site.Site{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SITE),
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type SiteResponse struct {
	*site.Site
}

type ListSitesResponse = types.ListResponse[*SiteResponse]

type CreateRoomTypeRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

func (r *CreateRoomTypeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateRoomTypeRequest) ToRoomType(ctx context.Context) *room.RoomType {
	return &room.RoomType{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ROOM_TYPE),
		Name:        r.Name,
		Description: r.Description,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

type RoomTypeResponse struct {
	*room.RoomType
}

type ListRoomTypesResponse = types.ListResponse[*RoomTypeResponse]
