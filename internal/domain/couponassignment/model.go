package couponassignment

import (
	"time"

	"github.com/hotelhub/hotelhub/internal/types"
)

// CouponAssignment grants one coupon to one recipient. The pair is unique
// and the grant can be consumed by at most one reservation.
type CouponAssignment struct {
	ID            string     `db:"id" json:"id"`
	CouponID      string     `db:"coupon_id" json:"coupon_id"`
	RecipientID   string     `db:"recipient_id" json:"recipient_id"`
	Authorized    bool       `db:"authorized" json:"authorized"`
	Consumed      bool       `db:"consumed" json:"consumed"`
	ConsumedAt    *time.Time `db:"consumed_at" json:"consumed_at,omitempty"`
	ReservationID *string    `db:"reservation_id" json:"reservation_id,omitempty"`
	types.BaseModel
}

// New returns an authorized, unconsumed assignment for the pair
func New(couponID, recipientID string, base types.BaseModel) *CouponAssignment {
	return &CouponAssignment{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COUPON_ASSIGNMENT),
		CouponID:    couponID,
		RecipientID: recipientID,
		Authorized:  true,
		BaseModel:   base,
	}
}

// BelongsTo reports whether the assignment binds exactly this coupon and recipient
func (a *CouponAssignment) BelongsTo(couponID, recipientID string) bool {
	return a.CouponID == couponID && a.RecipientID == recipientID
}

// ConsumedBy reports whether reservationID is the reservation that used the grant
func (a *CouponAssignment) ConsumedBy(reservationID string) bool {
	return a.Consumed && a.ReservationID != nil && *a.ReservationID == reservationID
}
