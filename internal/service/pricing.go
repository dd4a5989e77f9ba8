package service

import (
	"context"
	"time"

	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/shopspring/decimal"
)

// StayDraft is the part of a reservation that determines its price
type StayDraft struct {
	// ReservationID is empty for quotes of reservations that do not exist yet
	ReservationID string
	RecipientID   string
	CheckIn       time.Time
	CheckOut      time.Time
	NightlyPrice  decimal.Decimal
}

type PricingInput struct {
	Stay       StayDraft
	Coupon     *coupon.Coupon
	Assignment *couponassignment.CouponAssignment
	// ConsumedCount is the number of consumed assignments of Coupon
	ConsumedCount int
	Now           time.Time
}

type PricingResult struct {
	Nights      int
	Gross       decimal.Decimal
	Discount    decimal.Decimal
	Net         decimal.Decimal
	Eligibility types.Eligibility
	Reason      string
	// Assignment is the ledger state after pricing, nil when none was referenced
	Assignment *couponassignment.CouponAssignment
	// Redeemed is set when this call consumed the assignment
	Redeemed bool
}

// PricingService computes reservation totals and redeems at most one coupon
// assignment per reservation.
type PricingService interface {
	// Quote prices the stay without touching the ledger
	Quote(input PricingInput) (*PricingResult, error)

	// PriceAndRedeem prices the stay and, when a discount applies, consumes
	// the assignment. It must run inside the transaction that persists the
	// reservation totals. Ineligibility is reported in the result, never as
	// an error; losing a consume race downgrades the result to no discount.
	PriceAndRedeem(ctx context.Context, input PricingInput) (*PricingResult, error)
}

type pricingService struct {
	ServiceParams
}

func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{
		ServiceParams: params,
	}
}

func (s *pricingService) Quote(input PricingInput) (*PricingResult, error) {
	stay := input.Stay
	if stay.CheckIn.IsZero() || stay.CheckOut.IsZero() {
		return nil, ierr.NewError("check-in and check-out are required").
			WithHint("Please provide both check-in and check-out dates").
			WithReportableDetails(map[string]any{"failure": "invalid-dates"}).
			Mark(ierr.ErrValidation)
	}
	if !stay.NightlyPrice.IsPositive() {
		return nil, ierr.NewError("nightly price must be positive").
			WithHint("Room price is invalid").
			WithReportableDetails(map[string]any{"nightly_price": stay.NightlyPrice.String()}).
			Mark(ierr.ErrValidation)
	}

	nights := types.Nights(stay.CheckIn, stay.CheckOut)
	if nights <= 0 && s.rejectEmptyStays() {
		return nil, ierr.NewError("check-out must be after check-in").
			WithHint("Check-out date must be after check-in date").
			WithReportableDetails(map[string]any{
				"failure":   "invalid-dates",
				"check_in":  stay.CheckIn,
				"check_out": stay.CheckOut,
			}).
			Mark(ierr.ErrValidation)
	}

	gross := decimal.Zero
	if nights > 0 {
		gross = stay.NightlyPrice.Mul(decimal.NewFromInt(int64(nights)))
	}

	eligibility := evaluateEligibility(input)
	discount := decimal.Zero
	if eligibility.Discounts() {
		discount = input.Coupon.CalculateDiscount(gross)
	}

	return &PricingResult{
		Nights:      max(nights, 0),
		Gross:       gross,
		Discount:    discount,
		Net:         gross.Sub(discount),
		Eligibility: eligibility,
		Reason:      eligibility.Reason(),
		Assignment:  input.Assignment,
	}, nil
}

func (s *pricingService) PriceAndRedeem(ctx context.Context, input PricingInput) (*PricingResult, error) {
	result, err := s.Quote(input)
	if err != nil {
		return nil, err
	}

	if result.Eligibility != types.EligibilityEligible || !result.Discount.IsPositive() {
		s.Logger.Debugw("no coupon redemption",
			"reservation_id", input.Stay.ReservationID,
			"recipient_id", input.Stay.RecipientID,
			"outcome", result.Eligibility,
			"discount", result.Discount.String(),
		)
		return result, nil
	}

	if input.Stay.ReservationID == "" {
		return nil, ierr.NewError("reservation id is required to redeem a coupon").
			WithHint("Reservation must be saved before a coupon can be redeemed").
			Mark(ierr.ErrInvalidOperation)
	}

	at := input.Now.UTC()
	err = s.CouponAssignmentRepo.MarkConsumed(ctx, input.Assignment.ID, input.Stay.ReservationID, at)
	if err != nil {
		if !ierr.IsConflict(err) {
			return nil, err
		}

		s.Logger.Warnw("coupon assignment consumed concurrently",
			"reservation_id", input.Stay.ReservationID,
			"assignment_id", input.Assignment.ID,
			"coupon_id", input.Coupon.ID,
		)
		result.Discount = decimal.Zero
		result.Net = result.Gross
		result.Eligibility = types.EligibilityAlreadyConsumed
		result.Reason = types.ReasonConflict
		return result, nil
	}

	consumed := *input.Assignment
	consumed.Consumed = true
	consumed.ConsumedAt = &at
	consumed.ReservationID = &input.Stay.ReservationID
	result.Assignment = &consumed
	result.Redeemed = true

	s.Logger.Infow("coupon redeemed",
		"reservation_id", input.Stay.ReservationID,
		"assignment_id", consumed.ID,
		"coupon_id", input.Coupon.ID,
		"discount", result.Discount.String(),
	)
	return result, nil
}

func (s *pricingService) rejectEmptyStays() bool {
	return s.Config != nil && s.Config.Reservation.RejectEmptyStays
}

// evaluateEligibility checks the coupon and assignment against the stay.
// A reservation that already consumed its assignment keeps the discount
// even if the coupon has since expired or been deactivated.
func evaluateEligibility(input PricingInput) types.Eligibility {
	c, a := input.Coupon, input.Assignment
	switch {
	case c == nil && a == nil:
		return types.EligibilityNoCoupon
	case c == nil || a == nil:
		return types.EligibilityWrongPair
	case !a.BelongsTo(c.ID, input.Stay.RecipientID):
		return types.EligibilityWrongPair
	case input.Stay.ReservationID != "" && a.ConsumedBy(input.Stay.ReservationID):
		return types.EligibilityAlreadyApplied
	case !c.Active:
		return types.EligibilityInactive
	case input.Now.Before(c.StartDate):
		return types.EligibilityNotYetValid
	case input.Now.After(c.EndDate):
		return types.EligibilityExpired
	case !a.Authorized:
		return types.EligibilityUnauthorized
	case a.Consumed:
		return types.EligibilityAlreadyConsumed
	case c.RemainingUses(input.ConsumedCount) <= 0:
		return types.EligibilityExhausted
	}
	return types.EligibilityEligible
}
