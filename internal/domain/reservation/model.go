package reservation

import (
	"time"

	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/shopspring/decimal"
)

// Reservation books a room for a recipient. Totals are derived and are
// recomputed on every save.
type Reservation struct {
	ID                 string                  `db:"id" json:"id"`
	RecipientID        string                  `db:"recipient_id" json:"recipient_id"`
	RoomID             string                  `db:"room_id" json:"room_id"`
	CheckIn            time.Time               `db:"check_in" json:"check_in"`
	CheckOut           time.Time               `db:"check_out" json:"check_out"`
	ReservationStatus  types.ReservationStatus `db:"reservation_status" json:"reservation_status"`
	CouponID           *string                 `db:"coupon_id" json:"coupon_id,omitempty"`
	CouponAssignmentID *string                 `db:"coupon_assignment_id" json:"coupon_assignment_id,omitempty"`
	Nights             int                     `db:"nights" json:"nights"`
	GrossTotal         decimal.Decimal         `db:"gross_total" json:"gross_total"`
	DiscountAmount     decimal.Decimal         `db:"discount_amount" json:"discount_amount"`
	NetTotal           decimal.Decimal         `db:"net_total" json:"net_total"`
	Eligibility        types.Eligibility       `db:"eligibility" json:"eligibility"`
	EligibilityReason  string                  `db:"eligibility_reason" json:"eligibility_reason"`
	types.BaseModel
}

// TransitionTo moves the reservation to next or fails with ErrInvalidOperation
func (r *Reservation) TransitionTo(next types.ReservationStatus) error {
	if !r.ReservationStatus.CanTransitionTo(next) {
		return ierr.NewError("invalid reservation state transition").
			WithHintf("Reservation cannot move from %s to %s", r.ReservationStatus, next).
			WithReportableDetails(map[string]any{
				"reservation_id": r.ID,
				"from":           r.ReservationStatus,
				"to":             next,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	r.ReservationStatus = next
	return nil
}

// HasCoupon reports whether a coupon or assignment is referenced
func (r *Reservation) HasCoupon() bool {
	return r.CouponID != nil || r.CouponAssignmentID != nil
}

// RecipientSummary aggregates a recipient's reservations for reporting
type RecipientSummary struct {
	RecipientID      string          `db:"recipient_id" json:"recipient_id"`
	ReservationCount int             `db:"reservation_count" json:"reservation_count"`
	TotalSpent       decimal.Decimal `db:"total_spent" json:"total_spent"`
}
