package service

import (
	"strings"
	"testing"
	"time"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CouponServiceSuite struct {
	hotelSuite
}

func TestCouponService(t *testing.T) {
	suite.Run(t, new(CouponServiceSuite))
}

func (s *CouponServiceSuite) request(code string, kind types.DiscountType, value string) dto.CreateCouponRequest {
	now := s.GetNow()
	return dto.CreateCouponRequest{
		Code:         code,
		DiscountType: kind,
		Value:        decimal.RequireFromString(value),
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.AddDate(0, 1, 0),
		MaxUses:      3,
	}
}

func (s *CouponServiceSuite) TestCreateCoupon() {
	tests := []struct {
		name          string
		request       func() dto.CreateCouponRequest
		expectedCode  string
		expectedError func(error) bool
	}{
		{
			name:         "code_is_normalized",
			request:      func() dto.CreateCouponRequest { return s.request("  summer25 ", types.DiscountTypePercentage, "25") },
			expectedCode: "SUMMER25",
		},
		{
			name:          "duplicate_code_differs_only_in_case",
			request:       func() dto.CreateCouponRequest { return s.request("Summer25", types.DiscountTypeFixed, "10") },
			expectedError: ierr.IsAlreadyExists,
		},
		{
			name:          "percentage_above_hundred",
			request:       func() dto.CreateCouponRequest { return s.request("HUGE", types.DiscountTypePercentage, "120") },
			expectedError: ierr.IsValidation,
		},
		{
			name:          "non_positive_value",
			request:       func() dto.CreateCouponRequest { return s.request("ZERO", types.DiscountTypeFixed, "0") },
			expectedError: ierr.IsValidation,
		},
		{
			name: "end_before_start",
			request: func() dto.CreateCouponRequest {
				req := s.request("BACKWARDS", types.DiscountTypeFixed, "10")
				req.EndDate = req.StartDate.Add(-time.Hour)
				return req
			},
			expectedError: ierr.IsValidation,
		},
		{
			name: "no_uses",
			request: func() dto.CreateCouponRequest {
				req := s.request("NOUSE", types.DiscountTypeFixed, "10")
				req.MaxUses = 0
				return req
			},
			expectedError: ierr.IsValidation,
		},
		{
			name:          "unknown_discount_type",
			request:       func() dto.CreateCouponRequest { return s.request("ODD", types.DiscountType("bogo"), "10") },
			expectedError: ierr.IsValidation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.coupons.CreateCoupon(s.GetContext(), tt.request())
			if tt.expectedError != nil {
				s.Error(err)
				s.True(tt.expectedError(err), "unexpected error %v", err)
				return
			}
			s.NoError(err)
			s.Equal(tt.expectedCode, resp.Code)
			s.True(resp.Active)
			s.True(resp.CurrentlyValid)
			s.Equal(3, resp.RemainingUses)
			s.Equal(types.DefaultUserID, lo.FromPtr(resp.CreatorID))
		})
	}
}

func (s *CouponServiceSuite) TestCreateCouponGeneratesCode() {
	resp, err := s.coupons.CreateCoupon(s.GetContext(), s.request("", types.DiscountTypeFixed, "15"))
	s.NoError(err)
	s.True(strings.HasPrefix(resp.Code, types.SHORT_ID_PREFIX_COUPON))

	found, err := s.coupons.GetCouponByCode(s.GetContext(), strings.ToLower(resp.Code))
	s.NoError(err)
	s.Equal(resp.ID, found.ID)
}

func (s *CouponServiceSuite) TestUpdateCoupon() {
	created, err := s.coupons.CreateCoupon(s.GetContext(), s.request("EDIT", types.DiscountTypePercentage, "10"))
	s.NoError(err)

	s.Run("valid_change", func() {
		updated, err := s.coupons.UpdateCoupon(s.GetContext(), created.ID, dto.UpdateCouponRequest{
			Value:   lo.ToPtr(decimal.NewFromInt(30)),
			MaxUses: lo.ToPtr(10),
		})
		s.NoError(err)
		s.True(decimal.NewFromInt(30).Equal(updated.Value))
		s.Equal(10, updated.RemainingUses)
	})

	s.Run("invalid_change_is_not_stored", func() {
		_, err := s.coupons.UpdateCoupon(s.GetContext(), created.ID, dto.UpdateCouponRequest{
			Value: lo.ToPtr(decimal.NewFromInt(150)),
		})
		s.True(ierr.IsValidation(err))

		stored, err := s.coupons.GetCoupon(s.GetContext(), created.ID)
		s.NoError(err)
		s.True(decimal.NewFromInt(30).Equal(stored.Value))
	})

	s.Run("missing_coupon", func() {
		_, err := s.coupons.UpdateCoupon(s.GetContext(), "cpn_missing", dto.UpdateCouponRequest{MaxUses: lo.ToPtr(1)})
		s.True(ierr.IsNotFound(err))
	})
}

func (s *CouponServiceSuite) TestActivation() {
	created, err := s.coupons.CreateCoupon(s.GetContext(), s.request("TOGGLE", types.DiscountTypeFixed, "5"))
	s.NoError(err)

	resp, err := s.coupons.SetCouponActive(s.GetContext(), created.ID, false)
	s.NoError(err)
	s.False(resp.Active)
	s.False(resp.CurrentlyValid)

	inactive := false
	filter := types.NewCouponFilter()
	filter.Active = &inactive
	list, err := s.coupons.ListCoupons(s.GetContext(), filter)
	s.NoError(err)
	s.Len(list.Items, 1)
	s.Equal(created.ID, list.Items[0].ID)

	resp, err = s.coupons.SetCouponActive(s.GetContext(), created.ID, true)
	s.NoError(err)
	s.True(resp.CurrentlyValid)
}

func (s *CouponServiceSuite) TestRemainingUsesTracksConsumption() {
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 2)
	checkIn, checkOut := s.stay(2)

	_, err := s.reservations.CreateReservation(s.as(s.testData.guest), dto.CreateReservationRequest{
		RoomID: s.testData.room.ID, CheckIn: checkIn, CheckOut: checkOut, CouponCode: c.Code,
	})
	s.NoError(err)

	resp, err := s.coupons.GetCoupon(s.GetContext(), c.ID)
	s.NoError(err)
	s.Equal(1, resp.RemainingUses)
}

func (s *CouponServiceSuite) TestDeleteCouponCascades() {
	c := s.validCoupon("GONE", types.DiscountTypeFixed, 20, 5)
	checkIn, checkOut := s.stay(2)
	res, err := s.reservations.CreateReservation(s.as(s.testData.guest), dto.CreateReservationRequest{
		RoomID: s.testData.room.ID, CheckIn: checkIn, CheckOut: checkOut, CouponCode: "GONE",
	})
	s.NoError(err)
	_, err = s.ledger.AssignCoupon(s.GetContext(), c.ID, s.testData.other.ID)
	s.NoError(err)

	s.NoError(s.coupons.DeleteCoupon(s.GetContext(), c.ID))

	_, err = s.coupons.GetCoupon(s.GetContext(), c.ID)
	s.True(ierr.IsNotFound(err))

	filter := types.NewCouponAssignmentFilter()
	filter.CouponID = c.ID
	assignments, err := s.ledger.ListCouponAssignments(s.GetContext(), filter)
	s.NoError(err)
	s.Empty(assignments.Items)

	stored, err := s.GetStores().ReservationRepo.Get(s.GetContext(), res.ID)
	s.NoError(err)
	s.Nil(stored.CouponID)
	s.Nil(stored.CouponAssignmentID)
	s.True(decimal.NewFromInt(20).Equal(stored.DiscountAmount))

	s.True(ierr.IsNotFound(s.coupons.DeleteCoupon(s.GetContext(), c.ID)))
}
