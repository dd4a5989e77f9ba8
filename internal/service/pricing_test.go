package service

import (
	"testing"
	"time"

	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PricingServiceSuite struct {
	hotelSuite
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) draft(nights int, price string) StayDraft {
	checkIn, checkOut := s.stay(nights)
	return StayDraft{
		ReservationID: s.GetUUID(types.UUID_PREFIX_RESERVATION),
		RecipientID:   s.testData.guest.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		NightlyPrice:  decimal.RequireFromString(price),
	}
}

func (s *PricingServiceSuite) TestQuoteGross() {
	tests := []struct {
		name          string
		nights        int
		price         string
		expectedGross string
		expectedNight int
	}{
		{name: "three_nights", nights: 3, price: "100", expectedGross: "300", expectedNight: 3},
		{name: "one_night_with_cents", nights: 1, price: "89.99", expectedGross: "89.99", expectedNight: 1},
		{name: "same_day_stay_is_free", nights: 0, price: "100", expectedGross: "0", expectedNight: 0},
		{name: "inverted_dates_are_free", nights: -2, price: "100", expectedGross: "0", expectedNight: 0},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			result, err := s.pricing.Quote(PricingInput{Stay: s.draft(tt.nights, tt.price), Now: s.GetNow()})
			s.NoError(err)
			s.Equal(tt.expectedNight, result.Nights)
			s.True(decimal.RequireFromString(tt.expectedGross).Equal(result.Gross), "gross %s", result.Gross)
			s.True(result.Discount.IsZero())
			s.True(result.Net.Equal(result.Gross))
			s.Equal(types.EligibilityNoCoupon, result.Eligibility)
		})
	}
}

func (s *PricingServiceSuite) TestQuoteRejectsEmptyStayWhenConfigured() {
	s.GetConfig().Reservation.RejectEmptyStays = true
	defer func() { s.GetConfig().Reservation.RejectEmptyStays = false }()

	_, err := s.pricing.Quote(PricingInput{Stay: s.draft(0, "100"), Now: s.GetNow()})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingServiceSuite) TestQuoteRequiresDates() {
	_, err := s.pricing.Quote(PricingInput{
		Stay: StayDraft{RecipientID: s.testData.guest.ID, NightlyPrice: decimal.NewFromInt(100)},
		Now:  s.GetNow(),
	})
	s.True(ierr.IsValidation(err))
}

func (s *PricingServiceSuite) TestQuoteRejectsNonPositivePrice() {
	for _, price := range []string{"0", "0.00", "-10"} {
		s.Run("price_"+price, func() {
			_, err := s.pricing.Quote(PricingInput{Stay: s.draft(2, price), Now: s.GetNow()})
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *PricingServiceSuite) TestDiscounts() {
	tests := []struct {
		name             string
		kind             types.DiscountType
		value            int64
		nights           int
		price            string
		expectedDiscount string
		expectedNet      string
	}{
		{name: "percentage", kind: types.DiscountTypePercentage, value: 20, nights: 3, price: "100", expectedDiscount: "60", expectedNet: "240"},
		{name: "percentage_rounds_to_cents", kind: types.DiscountTypePercentage, value: 15, nights: 1, price: "333.33", expectedDiscount: "50", expectedNet: "283.33"},
		{name: "full_percentage", kind: types.DiscountTypePercentage, value: 100, nights: 2, price: "100", expectedDiscount: "200", expectedNet: "0"},
		{name: "fixed_below_gross", kind: types.DiscountTypeFixed, value: 50, nights: 3, price: "100", expectedDiscount: "50", expectedNet: "250"},
		{name: "fixed_capped_at_gross", kind: types.DiscountTypeFixed, value: 500, nights: 3, price: "100", expectedDiscount: "300", expectedNet: "0"},
		{name: "zero_gross_gives_zero_discount", kind: types.DiscountTypeFixed, value: 50, nights: 0, price: "100", expectedDiscount: "0", expectedNet: "0"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			c := s.validCoupon(types.GenerateShortIDWithPrefix("T"), tt.kind, tt.value, 10)
			a := couponassignment.New(c.ID, s.testData.guest.ID, types.GetDefaultBaseModel(s.GetContext()))

			result, err := s.pricing.Quote(PricingInput{
				Stay:       s.draft(tt.nights, tt.price),
				Coupon:     c,
				Assignment: a,
				Now:        s.GetNow(),
			})
			s.NoError(err)
			s.Equal(types.EligibilityEligible, result.Eligibility)
			s.True(decimal.RequireFromString(tt.expectedDiscount).Equal(result.Discount), "discount %s", result.Discount)
			s.True(decimal.RequireFromString(tt.expectedNet).Equal(result.Net), "net %s", result.Net)
		})
	}
}

func (s *PricingServiceSuite) TestEligibility() {
	now := s.GetNow()
	guest := s.testData.guest.ID
	resID := s.GetUUID(types.UUID_PREFIX_RESERVATION)

	base := func() (*coupon.Coupon, *couponassignment.CouponAssignment) {
		c := &coupon.Coupon{
			ID:           "cpn_1",
			Code:         "TEST20",
			DiscountType: types.DiscountTypePercentage,
			Value:        decimal.NewFromInt(20),
			StartDate:    now.AddDate(0, 0, -1),
			EndDate:      now.AddDate(0, 0, 1),
			MaxUses:      5,
			Active:       true,
		}
		a := &couponassignment.CouponAssignment{ID: "cpa_1", CouponID: c.ID, RecipientID: guest, Authorized: true}
		return c, a
	}

	tests := []struct {
		name     string
		mutate   func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment)
		consumed int
		expected types.Eligibility
	}{
		{
			name: "eligible",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				return c, a
			},
			expected: types.EligibilityEligible,
		},
		{
			name: "no_coupon",
			mutate: func(*coupon.Coupon, *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				return nil, nil
			},
			expected: types.EligibilityNoCoupon,
		},
		{
			name: "assignment_without_coupon",
			mutate: func(_ *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				return nil, a
			},
			expected: types.EligibilityWrongPair,
		},
		{
			name: "assignment_of_another_guest",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				a.RecipientID = "user_other"
				return c, a
			},
			expected: types.EligibilityWrongPair,
		},
		{
			name: "already_applied_wins_over_expiry",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				c.EndDate = now.AddDate(0, 0, -1)
				c.Active = false
				a.Consumed = true
				a.ReservationID = lo.ToPtr(resID)
				return c, a
			},
			expected: types.EligibilityAlreadyApplied,
		},
		{
			name: "inactive_before_dates",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				c.Active = false
				c.EndDate = now.AddDate(0, 0, -1)
				return c, a
			},
			expected: types.EligibilityInactive,
		},
		{
			name: "not_yet_valid",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				c.StartDate = now.Add(time.Hour)
				c.EndDate = now.AddDate(0, 0, 2)
				return c, a
			},
			expected: types.EligibilityNotYetValid,
		},
		{
			name: "expired",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				c.EndDate = now.Add(-time.Minute)
				return c, a
			},
			expected: types.EligibilityExpired,
		},
		{
			name: "unauthorized_before_consumed",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				a.Authorized = false
				a.Consumed = true
				a.ReservationID = lo.ToPtr("res_other")
				return c, a
			},
			expected: types.EligibilityUnauthorized,
		},
		{
			name: "consumed_by_another_reservation",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				a.Consumed = true
				a.ReservationID = lo.ToPtr("res_other")
				return c, a
			},
			consumed: 5,
			expected: types.EligibilityAlreadyConsumed,
		},
		{
			name: "exhausted",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				return c, a
			},
			consumed: 5,
			expected: types.EligibilityExhausted,
		},
		{
			name: "over_consumed_budget_is_exhausted",
			mutate: func(c *coupon.Coupon, a *couponassignment.CouponAssignment) (*coupon.Coupon, *couponassignment.CouponAssignment) {
				c.MaxUses = 1
				return c, a
			},
			consumed: 3,
			expected: types.EligibilityExhausted,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			c, a := tt.mutate(base())
			result, err := s.pricing.Quote(PricingInput{
				Stay: StayDraft{
					ReservationID: resID,
					RecipientID:   guest,
					CheckIn:       now,
					CheckOut:      now.AddDate(0, 0, 2),
					NightlyPrice:  decimal.NewFromInt(100),
				},
				Coupon:        c,
				Assignment:    a,
				ConsumedCount: tt.consumed,
				Now:           now,
			})
			s.NoError(err)
			s.Equal(tt.expected, result.Eligibility)
			s.Equal(tt.expected.Reason(), result.Reason)
			s.Equal(tt.expected.Discounts(), result.Discount.IsPositive())
		})
	}
}

func (s *PricingServiceSuite) TestPriceAndRedeemConsumesAssignment() {
	ctx := s.GetContext()
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	a := couponassignment.New(c.ID, s.testData.guest.ID, types.GetDefaultBaseModel(ctx))
	s.NoError(s.GetStores().CouponAssignmentRepo.Create(ctx, a))

	stay := s.draft(3, "100")
	result, err := s.pricing.PriceAndRedeem(ctx, PricingInput{Stay: stay, Coupon: c, Assignment: a, Now: s.GetNow()})
	s.NoError(err)
	s.True(result.Redeemed)
	s.True(decimal.NewFromInt(60).Equal(result.Discount))
	s.True(decimal.NewFromInt(240).Equal(result.Net))
	s.True(result.Assignment.ConsumedBy(stay.ReservationID))

	stored, err := s.GetStores().CouponAssignmentRepo.Get(ctx, a.ID)
	s.NoError(err)
	s.True(stored.Consumed)
	s.Equal(stay.ReservationID, lo.FromPtr(stored.ReservationID))
	s.NotNil(stored.ConsumedAt)
}

func (s *PricingServiceSuite) TestPriceAndRedeemSkipsIneligible() {
	ctx := s.GetContext()
	now := s.GetNow()
	c := s.createCoupon("OLD10", types.DiscountTypePercentage, 10, now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), 10)
	a := couponassignment.New(c.ID, s.testData.guest.ID, types.GetDefaultBaseModel(ctx))
	s.NoError(s.GetStores().CouponAssignmentRepo.Create(ctx, a))

	result, err := s.pricing.PriceAndRedeem(ctx, PricingInput{Stay: s.draft(3, "100"), Coupon: c, Assignment: a, Now: now})
	s.NoError(err)
	s.False(result.Redeemed)
	s.Equal(types.EligibilityExpired, result.Eligibility)
	s.True(result.Discount.IsZero())

	stored, err := s.GetStores().CouponAssignmentRepo.Get(ctx, a.ID)
	s.NoError(err)
	s.False(stored.Consumed)
	s.Nil(stored.ReservationID)
}

func (s *PricingServiceSuite) TestPriceAndRedeemZeroDiscountDoesNotConsume() {
	ctx := s.GetContext()
	c := s.validCoupon("FREE", types.DiscountTypeFixed, 50, 10)
	a := couponassignment.New(c.ID, s.testData.guest.ID, types.GetDefaultBaseModel(ctx))
	s.NoError(s.GetStores().CouponAssignmentRepo.Create(ctx, a))

	result, err := s.pricing.PriceAndRedeem(ctx, PricingInput{Stay: s.draft(0, "100"), Coupon: c, Assignment: a, Now: s.GetNow()})
	s.NoError(err)
	s.Equal(types.EligibilityEligible, result.Eligibility)
	s.False(result.Redeemed)

	stored, err := s.GetStores().CouponAssignmentRepo.Get(ctx, a.ID)
	s.NoError(err)
	s.False(stored.Consumed)
}

func (s *PricingServiceSuite) TestPriceAndRedeemRequiresReservationID() {
	ctx := s.GetContext()
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	a := couponassignment.New(c.ID, s.testData.guest.ID, types.GetDefaultBaseModel(ctx))

	stay := s.draft(3, "100")
	stay.ReservationID = ""
	_, err := s.pricing.PriceAndRedeem(ctx, PricingInput{Stay: stay, Coupon: c, Assignment: a, Now: s.GetNow()})
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PricingServiceSuite) TestPriceAndRedeemDowngradesOnConflict() {
	ctx := s.GetContext()
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	a := couponassignment.New(c.ID, s.testData.guest.ID, types.GetDefaultBaseModel(ctx))
	s.NoError(s.GetStores().CouponAssignmentRepo.Create(ctx, a))

	// another reservation consumed it after our snapshot was read
	snapshot := *a
	s.NoError(s.GetStores().CouponAssignmentRepo.MarkConsumed(ctx, a.ID, "res_winner", s.GetNow()))

	result, err := s.pricing.PriceAndRedeem(ctx, PricingInput{Stay: s.draft(3, "100"), Coupon: c, Assignment: &snapshot, Now: s.GetNow()})
	s.NoError(err)
	s.False(result.Redeemed)
	s.Equal(types.EligibilityAlreadyConsumed, result.Eligibility)
	s.Equal(types.ReasonConflict, result.Reason)
	s.True(result.Discount.IsZero())
	s.True(decimal.NewFromInt(300).Equal(result.Net))

	stored, err := s.GetStores().CouponAssignmentRepo.Get(ctx, a.ID)
	s.NoError(err)
	s.Equal("res_winner", lo.FromPtr(stored.ReservationID))
}
