package room

import (
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/shopspring/decimal"
)

// Room is a bookable unit priced per night
type Room struct {
	ID           string                 `db:"id" json:"id"`
	Number       string                 `db:"number" json:"number"`
	SiteID       string                 `db:"site_id" json:"site_id"`
	RoomTypeID   string                 `db:"room_type_id" json:"room_type_id"`
	NightlyPrice decimal.Decimal        `db:"nightly_price" json:"nightly_price"`
	Availability types.RoomAvailability `db:"availability" json:"availability"`
	types.BaseModel
}

func (r *Room) Validate() error {
	if r.Number == "" {
		return ierr.NewError("room number is required").
			WithHint("Room number is required").
			Mark(ierr.ErrValidation)
	}
	if !r.NightlyPrice.IsPositive() {
		return ierr.NewError("nightly price must be positive").
			WithHint("Nightly price must be greater than zero").
			WithReportableDetails(map[string]any{"nightly_price": r.NightlyPrice.String()}).
			Mark(ierr.ErrValidation)
	}
	return r.Availability.Validate()
}

func (r *Room) IsAvailable() bool {
	return r.Availability == types.RoomAvailable
}

// RoomType groups rooms by category, e.g. single, double, suite
type RoomType struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	types.BaseModel
}
