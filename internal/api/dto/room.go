package dto

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/room"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/hotelhub/hotelhub/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Number       string                 `json:"number" validate:"required,max=32"`
	SiteID       string                 `json:"site_id" validate:"required"`
	RoomTypeID   string                 `json:"room_type_id" validate:"required"`
	NightlyPrice decimal.Decimal        `json:"nightly_price"`
	Availability types.RoomAvailability `json:"availability,omitempty"`
}

func (r *CreateRoomRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Availability == "" {
		r.Availability = types.RoomAvailable
	}
	draft := room.Room{
		Number:       r.Number,
		NightlyPrice: r.NightlyPrice,
		Availability: r.Availability,
	}
	return draft.Validate()
}

func (r *CreateRoomRequest) ToRoom(ctx context.Context) *room.Room {
	return &room.Room{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ROOM),
		Number:       r.Number,
		SiteID:       r.SiteID,
		RoomTypeID:   r.RoomTypeID,
		NightlyPrice: r.NightlyPrice,
		Availability: r.Availability,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

type UpdateRoomRequest struct {
	RoomTypeID   *string                 `json:"room_type_id,omitempty"`
	NightlyPrice *decimal.Decimal        `json:"nightly_price,omitempty"`
	Availability *types.RoomAvailability `json:"availability,omitempty"`
}

func (r *UpdateRoomRequest) Validate() error {
	if r.RoomTypeID == nil && r.NightlyPrice == nil && r.Availability == nil {
		return ierr.NewError("nothing to update").
			WithHint("Provide at least one of room_type_id, nightly_price or availability").
			Mark(ierr.ErrValidation)
	}
	if r.NightlyPrice != nil && !r.NightlyPrice.IsPositive() {
		return ierr.NewError("nightly price must be positive").
			WithHint("Nightly price must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if r.Availability != nil {
		return r.Availability.Validate()
	}
	return nil
}

type RoomResponse struct {
	*room.Room
}

type ListRoomsResponse = types.ListResponse[*RoomResponse]
