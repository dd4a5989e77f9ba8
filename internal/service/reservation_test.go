package service

import (
	"testing"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
)

type ReservationServiceSuite struct {
	hotelSuite
}

func TestReservationService(t *testing.T) {
	suite.Run(t, new(ReservationServiceSuite))
}

func (s *ReservationServiceSuite) book(nights int, code string) (*dto.ReservationResponse, error) {
	checkIn, checkOut := s.stay(nights)
	return s.reservations.CreateReservation(s.as(s.testData.guest), dto.CreateReservationRequest{
		RoomID:     s.testData.room.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		CouponCode: code,
	})
}

func (s *ReservationServiceSuite) assignmentOf(couponID string) *couponassignment.CouponAssignment {
	a, err := s.GetStores().CouponAssignmentRepo.GetByPair(s.GetContext(), couponID, s.testData.guest.ID)
	s.Require().NoError(err)
	return a
}

func (s *ReservationServiceSuite) TestCreateReservation() {
	s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	s.validCoupon("BIG", types.DiscountTypeFixed, 500, 10)
	now := s.GetNow()
	s.createCoupon("OLD", types.DiscountTypePercentage, 10, now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), 10)
	s.createCoupon("SOON", types.DiscountTypePercentage, 10, now.AddDate(0, 1, 0), now.AddDate(0, 2, 0), 10)

	tests := []struct {
		name             string
		nights           int
		code             string
		expectedOutcome  types.Eligibility
		expectedGross    int64
		expectedDiscount int64
		expectConsumed   bool
	}{
		{name: "no_coupon", nights: 2, expectedOutcome: types.EligibilityNoCoupon, expectedGross: 200},
		{name: "percentage_coupon", nights: 3, code: "TEST20", expectedOutcome: types.EligibilityEligible, expectedGross: 300, expectedDiscount: 60, expectConsumed: true},
		{name: "fixed_coupon_capped", nights: 3, code: "big", expectedOutcome: types.EligibilityEligible, expectedGross: 300, expectedDiscount: 300, expectConsumed: true},
		{name: "expired_coupon", nights: 3, code: "OLD", expectedOutcome: types.EligibilityExpired, expectedGross: 300},
		{name: "coupon_not_yet_valid", nights: 3, code: "SOON", expectedOutcome: types.EligibilityNotYetValid, expectedGross: 300},
		{name: "same_day_stay", nights: 0, expectedOutcome: types.EligibilityNoCoupon, expectedGross: 0},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.book(tt.nights, tt.code)
			s.NoError(err)
			s.Equal(types.ReservationStatusPending, resp.ReservationStatus)
			s.Equal(tt.expectedOutcome, resp.Eligibility)
			s.Equal(max(tt.nights, 0), resp.Nights)
			s.True(decimal.NewFromInt(tt.expectedGross).Equal(resp.GrossTotal), "gross %s", resp.GrossTotal)
			s.True(decimal.NewFromInt(tt.expectedDiscount).Equal(resp.DiscountAmount), "discount %s", resp.DiscountAmount)
			s.True(resp.GrossTotal.Sub(resp.DiscountAmount).Equal(resp.NetTotal))

			stored, err := s.GetStores().ReservationRepo.Get(s.GetContext(), resp.ID)
			s.NoError(err)
			s.True(resp.NetTotal.Equal(stored.NetTotal))

			if tt.code == "" {
				s.Nil(resp.CouponAssignmentID)
				return
			}
			a, err := s.GetStores().CouponAssignmentRepo.Get(s.GetContext(), lo.FromPtr(resp.CouponAssignmentID))
			s.NoError(err)
			s.Equal(tt.expectConsumed, a.Consumed)
			if tt.expectConsumed {
				s.True(a.ConsumedBy(resp.ID))
			} else {
				s.Nil(a.ConsumedAt)
				s.Nil(a.ReservationID)
			}
		})
	}
}

func (s *ReservationServiceSuite) TestCreateReservationValidation() {
	s.Run("missing_dates", func() {
		_, err := s.reservations.CreateReservation(s.as(s.testData.guest), dto.CreateReservationRequest{RoomID: s.testData.room.ID})
		s.True(ierr.IsValidation(err))
	})

	s.Run("unknown_room", func() {
		checkIn, checkOut := s.stay(2)
		_, err := s.reservations.CreateReservation(s.as(s.testData.guest), dto.CreateReservationRequest{
			RoomID: "room_missing", CheckIn: checkIn, CheckOut: checkOut,
		})
		s.True(ierr.IsNotFound(err))
	})

	s.Run("unavailable_room", func() {
		closed := s.createRoom("666", decimal.NewFromInt(80), types.RoomUnavailable)
		checkIn, checkOut := s.stay(2)
		_, err := s.reservations.CreateReservation(s.as(s.testData.guest), dto.CreateReservationRequest{
			RoomID: closed.ID, CheckIn: checkIn, CheckOut: checkOut,
		})
		s.True(ierr.IsInvalidOperation(err))
	})

	s.Run("unknown_coupon_code", func() {
		_, err := s.book(2, "NOPE")
		s.True(ierr.IsNotFound(err))
	})

	s.Run("guest_booking_for_someone_else", func() {
		checkIn, checkOut := s.stay(2)
		_, err := s.reservations.CreateReservation(s.as(s.testData.guest), dto.CreateReservationRequest{
			RecipientID: s.testData.other.ID, RoomID: s.testData.room.ID, CheckIn: checkIn, CheckOut: checkOut,
		})
		s.True(ierr.IsPermissionDenied(err))
	})

	s.Run("empty_stay_rejected_when_configured", func() {
		s.GetConfig().Reservation.RejectEmptyStays = true
		defer func() { s.GetConfig().Reservation.RejectEmptyStays = false }()
		_, err := s.book(0, "")
		s.True(ierr.IsValidation(err))
	})
}

func (s *ReservationServiceSuite) TestStaffBooksForGuest() {
	checkIn, checkOut := s.stay(2)
	resp, err := s.reservations.CreateReservation(s.as(s.testData.staff), dto.CreateReservationRequest{
		RecipientID: s.testData.guest.ID,
		RoomID:      s.testData.room.ID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	})
	s.NoError(err)
	s.Equal(s.testData.guest.ID, resp.RecipientID)
	s.Equal(s.testData.staff.ID, resp.CreatedBy)
}

func (s *ReservationServiceSuite) TestWrongPairWithAnotherGuestsAssignment() {
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	theirs, err := s.ledger.GetOrCreate(s.GetContext(), c.ID, s.testData.other.ID)
	s.NoError(err)

	checkIn, checkOut := s.stay(3)
	resp, err := s.reservations.CreateReservation(s.as(s.testData.guest), dto.CreateReservationRequest{
		RoomID:             s.testData.room.ID,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		CouponAssignmentID: theirs.ID,
	})
	s.NoError(err)
	s.Equal(types.EligibilityWrongPair, resp.Eligibility)
	s.True(resp.DiscountAmount.IsZero())

	stored, err := s.GetStores().CouponAssignmentRepo.Get(s.GetContext(), theirs.ID)
	s.NoError(err)
	s.False(stored.Consumed)
}

func (s *ReservationServiceSuite) TestUnauthorizedAndInactiveCoupons() {
	s.Run("unauthorized_assignment", func() {
		c := s.validCoupon("LOCKED", types.DiscountTypePercentage, 20, 10)
		a, err := s.ledger.GetOrCreate(s.GetContext(), c.ID, s.testData.guest.ID)
		s.NoError(err)
		_, err = s.ledger.SetAuthorized(s.GetContext(), a.ID, false)
		s.NoError(err)

		resp, err := s.book(3, "LOCKED")
		s.NoError(err)
		s.Equal(types.EligibilityUnauthorized, resp.Eligibility)
		s.False(s.assignmentOf(c.ID).Consumed)
	})

	s.Run("inactive_coupon", func() {
		c := s.validCoupon("PAUSED", types.DiscountTypePercentage, 20, 10)
		_, err := s.coupons.SetCouponActive(s.GetContext(), c.ID, false)
		s.NoError(err)

		resp, err := s.book(3, "PAUSED")
		s.NoError(err)
		s.Equal(types.EligibilityInactive, resp.Eligibility)
		s.True(resp.NetTotal.Equal(resp.GrossTotal))
	})
}

func (s *ReservationServiceSuite) TestCouponUsedOnlyOnce() {
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)

	first, err := s.book(3, "TEST20")
	s.NoError(err)
	s.Equal(types.EligibilityEligible, first.Eligibility)

	second, err := s.book(2, "TEST20")
	s.NoError(err)
	s.Equal(types.EligibilityAlreadyConsumed, second.Eligibility)
	s.True(second.DiscountAmount.IsZero())
	s.Equal(lo.FromPtr(first.CouponAssignmentID), lo.FromPtr(second.CouponAssignmentID))
	s.True(s.assignmentOf(c.ID).ConsumedBy(first.ID))
}

func (s *ReservationServiceSuite) TestCouponBudgetExhausted() {
	c := s.validCoupon("ONEOFF", types.DiscountTypeFixed, 25, 1)

	checkIn, checkOut := s.stay(2)
	winner, err := s.reservations.CreateReservation(s.as(s.testData.other), dto.CreateReservationRequest{
		RoomID: s.testData.room.ID, CheckIn: checkIn, CheckOut: checkOut, CouponCode: "ONEOFF",
	})
	s.NoError(err)
	s.Equal(types.EligibilityEligible, winner.Eligibility)

	resp, err := s.book(2, "ONEOFF")
	s.NoError(err)
	s.Equal(types.EligibilityExhausted, resp.Eligibility)
	s.False(s.assignmentOf(c.ID).Consumed)

	remaining, err := s.coupons.RemainingUses(s.GetContext(), c)
	s.NoError(err)
	s.Equal(0, remaining)
}

func (s *ReservationServiceSuite) TestResaveKeepsDiscount() {
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	created, err := s.book(3, "TEST20")
	s.NoError(err)
	consumedAt := lo.FromPtr(s.assignmentOf(c.ID).ConsumedAt)

	// deactivating the coupon does not take the discount back
	_, err = s.coupons.SetCouponActive(s.GetContext(), c.ID, false)
	s.NoError(err)

	_, checkOut := s.stay(4)
	updated, err := s.reservations.UpdateReservation(s.as(s.testData.guest), created.ID, dto.UpdateReservationRequest{
		CheckOut: &checkOut,
	})
	s.NoError(err)
	s.Equal(types.EligibilityAlreadyApplied, updated.Eligibility)
	s.Equal(4, updated.Nights)
	s.True(decimal.NewFromInt(400).Equal(updated.GrossTotal))
	s.True(decimal.NewFromInt(80).Equal(updated.DiscountAmount))
	s.True(decimal.NewFromInt(320).Equal(updated.NetTotal))

	a := s.assignmentOf(c.ID)
	s.True(a.ConsumedBy(created.ID))
	s.True(consumedAt.Equal(lo.FromPtr(a.ConsumedAt)))
}

func (s *ReservationServiceSuite) TestUpdateReservation() {
	s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	penthouse := s.createRoom("201", decimal.NewFromInt(250), types.RoomAvailable)

	s.Run("change_room_reprices", func() {
		created, err := s.book(2, "")
		s.NoError(err)
		updated, err := s.reservations.UpdateReservation(s.as(s.testData.guest), created.ID, dto.UpdateReservationRequest{
			RoomID: &penthouse.ID,
		})
		s.NoError(err)
		s.True(decimal.NewFromInt(500).Equal(updated.GrossTotal))
	})

	s.Run("attach_coupon_later", func() {
		created, err := s.book(3, "")
		s.NoError(err)
		updated, err := s.reservations.UpdateReservation(s.as(s.testData.guest), created.ID, dto.UpdateReservationRequest{
			CouponCode: lo.ToPtr("test20"),
		})
		s.NoError(err)
		s.Equal(types.EligibilityEligible, updated.Eligibility)
		s.True(decimal.NewFromInt(240).Equal(updated.NetTotal))
	})

	s.Run("second_coupon_rejected", func() {
		s.validCoupon("MORE", types.DiscountTypeFixed, 10, 10)
		reservations, err := s.reservations.ListMyReservations(s.as(s.testData.guest), nil)
		s.NoError(err)
		withCoupon, ok := lo.Find(reservations.Items, func(r *dto.ReservationResponse) bool { return r.HasCoupon() })
		s.Require().True(ok)

		_, err = s.reservations.UpdateReservation(s.as(s.testData.guest), withCoupon.ID, dto.UpdateReservationRequest{
			CouponCode: lo.ToPtr("MORE"),
		})
		s.True(ierr.IsInvalidOperation(err))
	})

	s.Run("other_guest_cannot_see_it", func() {
		created, err := s.book(1, "")
		s.NoError(err)
		_, err = s.reservations.UpdateReservation(s.as(s.testData.other), created.ID, dto.UpdateReservationRequest{
			RoomID: &penthouse.ID,
		})
		s.True(ierr.IsNotFound(err))
	})

	s.Run("checked_in_reservation_is_frozen", func() {
		created, err := s.book(1, "")
		s.NoError(err)
		_, err = s.reservations.CheckIn(s.as(s.testData.staff), created.ID)
		s.NoError(err)
		_, err = s.reservations.UpdateReservation(s.as(s.testData.staff), created.ID, dto.UpdateReservationRequest{
			RoomID: &penthouse.ID,
		})
		s.True(ierr.IsInvalidOperation(err))
	})
}

func (s *ReservationServiceSuite) TestLifecycle() {
	guest := s.as(s.testData.guest)
	staff := s.as(s.testData.staff)

	s.Run("check_in_then_out", func() {
		created, err := s.book(2, "")
		s.NoError(err)

		_, err = s.reservations.CheckIn(guest, created.ID)
		s.True(ierr.IsPermissionDenied(err))

		resp, err := s.reservations.CheckIn(staff, created.ID)
		s.NoError(err)
		s.Equal(types.ReservationStatusCheckedIn, resp.ReservationStatus)

		_, err = s.reservations.CancelReservation(guest, created.ID)
		s.True(ierr.IsInvalidOperation(err))

		resp, err = s.reservations.CheckOut(staff, created.ID)
		s.NoError(err)
		s.Equal(types.ReservationStatusCheckedOut, resp.ReservationStatus)

		_, err = s.reservations.CheckIn(staff, created.ID)
		s.True(ierr.IsInvalidOperation(err))
	})

	s.Run("check_out_requires_check_in", func() {
		created, err := s.book(2, "")
		s.NoError(err)
		_, err = s.reservations.CheckOut(staff, created.ID)
		s.True(ierr.IsInvalidOperation(err))
	})

	s.Run("only_owner_cancels", func() {
		created, err := s.book(2, "")
		s.NoError(err)

		_, err = s.reservations.CancelReservation(staff, created.ID)
		s.True(ierr.IsPermissionDenied(err))
		_, err = s.reservations.CancelReservation(s.as(s.testData.other), created.ID)
		s.True(ierr.IsPermissionDenied(err))

		resp, err := s.reservations.CancelReservation(guest, created.ID)
		s.NoError(err)
		s.Equal(types.ReservationStatusCancelled, resp.ReservationStatus)

		_, err = s.reservations.CancelReservation(guest, created.ID)
		s.True(ierr.IsInvalidOperation(err))
	})
}

func (s *ReservationServiceSuite) TestCancelReleasesUnusedCoupon() {
	now := s.GetNow()
	s.createCoupon("OLD", types.DiscountTypePercentage, 10, now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), 10)
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)

	s.Run("unused_reference_dropped", func() {
		created, err := s.book(2, "OLD")
		s.NoError(err)
		s.NotNil(created.CouponAssignmentID)

		resp, err := s.reservations.CancelReservation(s.as(s.testData.guest), created.ID)
		s.NoError(err)
		s.Nil(resp.CouponID)
		s.Nil(resp.CouponAssignmentID)
		s.Equal(types.EligibilityNoCoupon, resp.Eligibility)
	})

	s.Run("redeemed_coupon_stays_consumed", func() {
		created, err := s.book(3, "TEST20")
		s.NoError(err)

		resp, err := s.reservations.CancelReservation(s.as(s.testData.guest), created.ID)
		s.NoError(err)
		s.Equal(types.EligibilityAlreadyApplied, resp.Eligibility)
		s.True(decimal.NewFromInt(60).Equal(resp.DiscountAmount))
		s.True(s.assignmentOf(c.ID).ConsumedBy(created.ID))
	})
}

func (s *ReservationServiceSuite) TestConcurrentRedemptionHasOneWinner() {
	c := s.validCoupon("RUSH", types.DiscountTypePercentage, 20, 10)

	const attempts = 8
	results := make([]*dto.ReservationResponse, attempts)
	errs := make([]error, attempts)

	var wg conc.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Go(func() {
			results[i], errs[i] = s.book(2, "RUSH")
		})
	}
	wg.Wait()

	winners := 0
	for i := 0; i < attempts; i++ {
		s.Require().NoError(errs[i])
		switch results[i].Eligibility {
		case types.EligibilityEligible:
			winners++
			s.True(decimal.NewFromInt(40).Equal(results[i].DiscountAmount))
		case types.EligibilityAlreadyConsumed:
			s.True(results[i].DiscountAmount.IsZero())
		default:
			s.Failf("unexpected outcome", "got %s", results[i].Eligibility)
		}
	}
	s.Equal(1, winners)

	consumed, err := s.GetStores().CouponAssignmentRepo.CountConsumed(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(1, consumed)
}

func (s *ReservationServiceSuite) TestQuoteReservationWritesNothing() {
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	checkIn, checkOut := s.stay(3)

	quote, err := s.reservations.QuoteReservation(s.as(s.testData.guest), dto.QuoteReservationRequest{
		RoomID: s.testData.room.ID, CheckIn: checkIn, CheckOut: checkOut, CouponCode: "TEST20",
	})
	s.NoError(err)
	s.Equal(types.EligibilityEligible, quote.Eligibility)
	s.True(decimal.NewFromInt(240).Equal(quote.NetTotal))
	s.Nil(quote.CouponAssignmentID)

	_, err = s.GetStores().CouponAssignmentRepo.GetByPair(s.GetContext(), c.ID, s.testData.guest.ID)
	s.True(ierr.IsNotFound(err))
	count, err := s.GetStores().ReservationRepo.Count(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(0, count)
}

func (s *ReservationServiceSuite) TestListReservations() {
	_, err := s.book(1, "")
	s.NoError(err)
	_, err = s.book(2, "")
	s.NoError(err)
	checkIn, checkOut := s.stay(1)
	_, err = s.reservations.CreateReservation(s.as(s.testData.other), dto.CreateReservationRequest{
		RoomID: s.testData.room.ID, CheckIn: checkIn, CheckOut: checkOut,
	})
	s.NoError(err)

	mine, err := s.reservations.ListMyReservations(s.as(s.testData.guest), nil)
	s.NoError(err)
	s.Len(mine.Items, 2)
	s.Equal(2, mine.Pagination.Total)

	all, err := s.reservations.ListReservations(s.as(s.testData.staff), nil)
	s.NoError(err)
	s.Len(all.Items, 3)

	filter := types.NewReservationFilter()
	filter.ReservationStatus = []types.ReservationStatus{types.ReservationStatusCancelled}
	none, err := s.reservations.ListReservations(s.as(s.testData.staff), filter)
	s.NoError(err)
	s.Empty(none.Items)

	_, err = s.reservations.GetReservation(s.as(s.testData.other), mine.Items[0].ID)
	s.True(ierr.IsNotFound(err))
}
