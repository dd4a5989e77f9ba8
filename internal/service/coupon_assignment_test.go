package service

import (
	"testing"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"github.com/stretchr/testify/suite"
)

type CouponAssignmentServiceSuite struct {
	hotelSuite
}

func TestCouponAssignmentService(t *testing.T) {
	suite.Run(t, new(CouponAssignmentServiceSuite))
}

func (s *CouponAssignmentServiceSuite) TestAssignCoupon() {
	c := s.validCoupon("WELCOME", types.DiscountTypeFixed, 30, 10)

	resp, err := s.ledger.AssignCoupon(s.GetContext(), c.ID, s.testData.guest.ID)
	s.NoError(err)
	s.True(resp.Authorized)
	s.False(resp.Consumed)
	s.Len(s.GetPubSub().GetMessages(types.TopicCouponAssigned), 1)

	_, err = s.ledger.AssignCoupon(s.GetContext(), c.ID, s.testData.guest.ID)
	s.True(ierr.IsAlreadyExists(err))
	s.Len(s.GetPubSub().GetMessages(types.TopicCouponAssigned), 1)

	_, err = s.ledger.AssignCoupon(s.GetContext(), c.ID, "user_missing")
	s.True(ierr.IsNotFound(err))

	_, err = s.ledger.AssignCoupon(s.GetContext(), "cpn_missing", s.testData.guest.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *CouponAssignmentServiceSuite) TestAssignCouponBulk() {
	c := s.validCoupon("WELCOME", types.DiscountTypeFixed, 30, 10)
	_, err := s.ledger.AssignCoupon(s.GetContext(), c.ID, s.testData.guest.ID)
	s.NoError(err)
	s.GetPubSub().ClearMessages()

	resp, err := s.ledger.AssignCouponBulk(s.GetContext(), c.ID, dto.AssignCouponRequest{
		RecipientIDs: []string{s.testData.guest.ID, s.testData.other.ID, s.testData.other.ID, s.testData.staff.ID},
	})
	s.NoError(err)
	s.Len(resp.Assigned, 2)
	s.Equal([]string{s.testData.guest.ID}, resp.Skipped)
	s.Len(s.GetPubSub().GetMessages(types.TopicCouponAssigned), 2)

	recipients := lo.Map(resp.Assigned, func(a *dto.CouponAssignmentResponse, _ int) string { return a.RecipientID })
	s.ElementsMatch([]string{s.testData.other.ID, s.testData.staff.ID}, recipients)

	s.Run("empty_request", func() {
		_, err := s.ledger.AssignCouponBulk(s.GetContext(), c.ID, dto.AssignCouponRequest{})
		s.True(ierr.IsValidation(err))
	})

	s.Run("unknown_recipient", func() {
		_, err := s.ledger.AssignCouponBulk(s.GetContext(), c.ID, dto.AssignCouponRequest{RecipientIDs: []string{"user_missing"}})
		s.True(ierr.IsNotFound(err))
	})
}

func (s *CouponAssignmentServiceSuite) TestListCouponAssignmentsPagination() {
	c := s.validCoupon("WELCOME", types.DiscountTypeFixed, 30, 10)
	_, err := s.ledger.AssignCouponBulk(s.GetContext(), c.ID, dto.AssignCouponRequest{
		RecipientIDs: []string{s.testData.guest.ID, s.testData.other.ID, s.testData.staff.ID},
	})
	s.NoError(err)

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantItems int
	}{
		{"first_page", 1, 0, 1},
		{"second_page", 2, 2, 1},
		{"past_the_end", 5, 5, 0},
		{"everything", 50, 0, 3},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			filter := types.NewCouponAssignmentFilter()
			filter.Limit = lo.ToPtr(tt.limit)
			filter.Offset = lo.ToPtr(tt.offset)
			filter.CouponID = c.ID

			list, err := s.ledger.ListCouponAssignments(s.GetContext(), filter)
			s.NoError(err)
			s.Len(list.Items, tt.wantItems)
			s.Equal(3, list.Pagination.Total)
		})
	}
}

func (s *CouponAssignmentServiceSuite) TestGetOrCreateIsIdempotent() {
	c := s.validCoupon("ONCE", types.DiscountTypeFixed, 30, 10)

	const callers = 6
	p := pool.NewWithResults[*couponassignment.CouponAssignment]().WithErrors()
	for i := 0; i < callers; i++ {
		p.Go(func() (*couponassignment.CouponAssignment, error) {
			return s.ledger.GetOrCreate(s.GetContext(), c.ID, s.testData.guest.ID)
		})
	}
	results, err := p.Wait()
	s.NoError(err)
	s.Len(results, callers)

	ids := lo.Uniq(lo.Map(results, func(a *couponassignment.CouponAssignment, _ int) string { return a.ID }))
	s.Len(ids, 1)

	filter := types.NewCouponAssignmentFilter()
	filter.CouponID = c.ID
	list, err := s.ledger.ListCouponAssignments(s.GetContext(), filter)
	s.NoError(err)
	s.Len(list.Items, 1)
}

func (s *CouponAssignmentServiceSuite) TestMarkConsumed() {
	c := s.validCoupon("ONCE", types.DiscountTypeFixed, 30, 10)
	a, err := s.ledger.GetOrCreate(s.GetContext(), c.ID, s.testData.guest.ID)
	s.NoError(err)

	s.NoError(s.ledger.MarkConsumed(s.GetContext(), a.ID, "res_1", s.GetNow()))
	err = s.ledger.MarkConsumed(s.GetContext(), a.ID, "res_2", s.GetNow())
	s.True(ierr.IsConflict(err))

	stored, err := s.GetStores().CouponAssignmentRepo.Get(s.GetContext(), a.ID)
	s.NoError(err)
	s.Equal("res_1", lo.FromPtr(stored.ReservationID))
}

func (s *CouponAssignmentServiceSuite) TestSetAuthorized() {
	c := s.validCoupon("GATED", types.DiscountTypeFixed, 30, 10)
	a, err := s.ledger.AssignCoupon(s.GetContext(), c.ID, s.testData.guest.ID)
	s.NoError(err)

	resp, err := s.ledger.SetAuthorized(s.GetContext(), a.ID, false)
	s.NoError(err)
	s.False(resp.Authorized)

	_, err = s.ledger.SetAuthorized(s.GetContext(), "cpa_missing", true)
	s.True(ierr.IsNotFound(err))
}

func (s *CouponAssignmentServiceSuite) TestValidateCouponCode() {
	c := s.validCoupon("TEST20", types.DiscountTypePercentage, 20, 10)
	guest := s.as(s.testData.guest)

	resp, err := s.ledger.ValidateCouponCode(guest, "test20")
	s.NoError(err)
	s.Equal(types.EligibilityEligible, resp.Eligibility)
	s.Equal(c.ID, resp.Coupon.ID)
	s.Equal(10, resp.Coupon.RemainingUses)
	s.NotEmpty(resp.Assignment.ID)

	again, err := s.ledger.ValidateCouponCode(guest, "TEST20")
	s.NoError(err)
	s.Equal(resp.Assignment.ID, again.Assignment.ID)

	s.NoError(s.ledger.MarkConsumed(guest, resp.Assignment.ID, "res_1", s.GetNow()))
	used, err := s.ledger.ValidateCouponCode(guest, "TEST20")
	s.NoError(err)
	s.Equal(types.EligibilityAlreadyConsumed, used.Eligibility)
	s.Equal(types.EligibilityAlreadyConsumed.Reason(), used.Reason)

	_, err = s.ledger.ValidateCouponCode(guest, "NOPE")
	s.True(ierr.IsNotFound(err))

	_, err = s.ledger.ValidateCouponCode(guest, "")
	s.True(ierr.IsValidation(err))
}

func (s *CouponAssignmentServiceSuite) TestListMyCoupons() {
	first := s.validCoupon("FIRST", types.DiscountTypeFixed, 10, 10)
	second := s.validCoupon("SECOND", types.DiscountTypePercentage, 5, 10)
	for _, couponID := range []string{first.ID, second.ID} {
		_, err := s.ledger.AssignCoupon(s.GetContext(), couponID, s.testData.guest.ID)
		s.NoError(err)
	}
	_, err := s.ledger.AssignCoupon(s.GetContext(), first.ID, s.testData.other.ID)
	s.NoError(err)

	mine, err := s.ledger.ListMyCoupons(s.as(s.testData.guest))
	s.NoError(err)
	s.Len(mine.Items, 2)
	for _, item := range mine.Items {
		s.Equal(s.testData.guest.ID, item.RecipientID)
		s.Require().NotNil(item.Coupon)
		s.Equal(item.CouponID, item.Coupon.ID)
	}

	theirs, err := s.ledger.ListMyCoupons(s.as(s.testData.other))
	s.NoError(err)
	s.Len(theirs.Items, 1)
}
