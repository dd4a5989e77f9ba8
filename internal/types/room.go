package types

import (
	ierr "github.com/hotelhub/hotelhub/internal/errors"
)

// RoomAvailability marks whether a room can take new reservations
type RoomAvailability string

const (
	RoomAvailable   RoomAvailability = "available"
	RoomUnavailable RoomAvailability = "unavailable"
)

func (a RoomAvailability) Validate() error {
	switch a {
	case RoomAvailable, RoomUnavailable:
		return nil
	}
	return ierr.NewError("invalid room availability").
		WithHint("Availability must be either available or unavailable").
		WithReportableDetails(map[string]any{"availability": a}).
		Mark(ierr.ErrValidation)
}

type RoomFilter struct {
	*QueryFilter

	RoomIDs      []string          `json:"room_ids,omitempty" form:"room_ids"`
	SiteID       string            `json:"site_id,omitempty" form:"site_id"`
	RoomTypeID   string            `json:"room_type_id,omitempty" form:"room_type_id"`
	Availability *RoomAvailability `json:"availability,omitempty" form:"availability"`
}

func NewRoomFilter() *RoomFilter {
	return &RoomFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *RoomFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.Availability != nil {
		return f.Availability.Validate()
	}
	return nil
}
