package dto

import (
	"time"

	"github.com/hotelhub/hotelhub/internal/domain/reservation"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/hotelhub/hotelhub/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateReservationRequest books a room. RecipientID may only be set by staff
// booking on behalf of a guest. A coupon is referenced either by code, by an
// assignment id, or both.
type CreateReservationRequest struct {
	RecipientID        string    `json:"recipient_id,omitempty"`
	RoomID             string    `json:"room_id" validate:"required"`
	CheckIn            time.Time `json:"check_in"`
	CheckOut           time.Time `json:"check_out"`
	CouponCode         string    `json:"coupon_code,omitempty" validate:"omitempty,max=32"`
	CouponAssignmentID string    `json:"coupon_assignment_id,omitempty"`
}

func (r *CreateReservationRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validateStayDates(r.CheckIn, r.CheckOut)
}

// QuoteReservationRequest prices a stay without persisting anything
type QuoteReservationRequest = CreateReservationRequest

// UpdateReservationRequest changes the stay of a pending reservation. A
// coupon can be attached only while none is attached yet.
type UpdateReservationRequest struct {
	RoomID     *string    `json:"room_id,omitempty"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	CouponCode *string    `json:"coupon_code,omitempty" validate:"omitempty,max=32"`
}

func (r *UpdateReservationRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.RoomID != nil && *r.RoomID == "" {
		return ierr.NewError("room_id cannot be empty").
			WithHint("Please provide a valid room").
			Mark(ierr.ErrValidation)
	}
	if (r.CheckIn != nil && r.CheckIn.IsZero()) || (r.CheckOut != nil && r.CheckOut.IsZero()) {
		return invalidDatesError()
	}
	return nil
}

func validateStayDates(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return invalidDatesError()
	}
	return nil
}

func invalidDatesError() error {
	return ierr.NewError("invalid stay dates").
		WithHint("Please provide both check_in and check_out dates").
		WithReportableDetails(map[string]any{"failure": "invalid-dates"}).
		Mark(ierr.ErrValidation)
}

type ReservationResponse struct {
	*reservation.Reservation
}

func NewReservationResponse(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{Reservation: r}
}

type ListReservationsResponse = types.ListResponse[*ReservationResponse]

// QuoteResponse is the priced outcome of a dry run
type QuoteResponse struct {
	RoomID             string            `json:"room_id"`
	RecipientID        string            `json:"recipient_id"`
	Nights             int               `json:"nights"`
	NightlyPrice       decimal.Decimal   `json:"nightly_price"`
	GrossTotal         decimal.Decimal   `json:"gross_total"`
	DiscountAmount     decimal.Decimal   `json:"discount_amount"`
	NetTotal           decimal.Decimal   `json:"net_total"`
	Eligibility        types.Eligibility `json:"eligibility"`
	EligibilityReason  string            `json:"eligibility_reason"`
	CouponID           *string           `json:"coupon_id,omitempty"`
	CouponAssignmentID *string           `json:"coupon_assignment_id,omitempty"`
}
