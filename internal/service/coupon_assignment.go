package service

import (
	"context"
	"time"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	"github.com/hotelhub/hotelhub/internal/domain/user"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

const maxNotificationWorkers = 8

// CouponAssignmentService is the ledger of coupon grants. Each (coupon,
// recipient) pair has at most one assignment and each assignment is consumed
// at most once.
type CouponAssignmentService interface {
	// AssignCoupon grants the coupon to one recipient. A second grant of the
	// same pair fails with ErrAlreadyExists.
	AssignCoupon(ctx context.Context, couponID, recipientID string) (*dto.CouponAssignmentResponse, error)
	// AssignCouponBulk grants the coupon to every listed recipient that does
	// not hold it yet and reports the others as skipped.
	AssignCouponBulk(ctx context.Context, couponID string, req dto.AssignCouponRequest) (*dto.AssignCouponResponse, error)
	// GetOrCreate returns the pair's assignment, creating an authorized one
	// when missing. Concurrent callers all get the same row.
	GetOrCreate(ctx context.Context, couponID, recipientID string) (*couponassignment.CouponAssignment, error)
	// MarkConsumed fails with ErrConflict when the assignment was already consumed
	MarkConsumed(ctx context.Context, assignmentID, reservationID string, at time.Time) error
	SetAuthorized(ctx context.Context, id string, authorized bool) (*dto.CouponAssignmentResponse, error)
	ListCouponAssignments(ctx context.Context, filter *types.CouponAssignmentFilter) (*dto.ListCouponAssignmentsResponse, error)
	ListMyCoupons(ctx context.Context) (*dto.ListCouponAssignmentsResponse, error)
	// ValidateCouponCode resolves a code for the caller, creating their
	// assignment on first lookup, and reports whether it could be redeemed now.
	ValidateCouponCode(ctx context.Context, code string) (*dto.ValidateCouponResponse, error)
}

type couponAssignmentService struct {
	ServiceParams
	notifier NotificationService
}

func NewCouponAssignmentService(params ServiceParams, notifier NotificationService) CouponAssignmentService {
	return &couponAssignmentService{
		ServiceParams: params,
		notifier:      notifier,
	}
}

func (s *couponAssignmentService) AssignCoupon(ctx context.Context, couponID, recipientID string) (*dto.CouponAssignmentResponse, error) {
	c, err := s.CouponRepo.Get(ctx, couponID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.UserRepo.Get(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	a := couponassignment.New(c.ID, recipient.ID, types.GetDefaultBaseModel(ctx))
	if err := s.CouponAssignmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.Logger.Infow("coupon assigned", "coupon_id", c.ID, "assignment_id", a.ID, "recipient_id", recipient.ID)
	s.notifier.PublishCouponAssigned(ctx, c, recipient, a)

	return &dto.CouponAssignmentResponse{CouponAssignment: a}, nil
}

type newAssignment struct {
	assignment *couponassignment.CouponAssignment
	recipient  *user.User
}

func (s *couponAssignmentService) AssignCouponBulk(ctx context.Context, couponID string, req dto.AssignCouponRequest) (*dto.AssignCouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CouponRepo.Get(ctx, couponID)
	if err != nil {
		return nil, err
	}

	var created []newAssignment
	var skipped []string
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		for _, recipientID := range req.RecipientIDs {
			recipient, err := s.UserRepo.Get(txCtx, recipientID)
			if err != nil {
				return err
			}

			a := couponassignment.New(c.ID, recipient.ID, types.GetDefaultBaseModel(txCtx))
			// nested so a duplicate only rolls back to its savepoint
			err = s.DB.WithTx(txCtx, func(spCtx context.Context) error {
				return s.CouponAssignmentRepo.Create(spCtx, a)
			})
			if ierr.IsAlreadyExists(err) {
				skipped = append(skipped, recipientID)
				continue
			}
			if err != nil {
				return err
			}
			created = append(created, newAssignment{assignment: a, recipient: recipient})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("coupon assigned in bulk",
		"coupon_id", c.ID,
		"assigned", len(created),
		"skipped", len(skipped),
	)

	p := pool.New().WithMaxGoroutines(maxNotificationWorkers)
	for _, item := range created {
		p.Go(func() {
			s.notifier.PublishCouponAssigned(ctx, c, item.recipient, item.assignment)
		})
	}
	p.Wait()

	return &dto.AssignCouponResponse{
		Assigned: lo.Map(created, func(item newAssignment, _ int) *dto.CouponAssignmentResponse {
			return &dto.CouponAssignmentResponse{CouponAssignment: item.assignment}
		}),
		Skipped: lo.Ternary(skipped == nil, []string{}, skipped),
	}, nil
}

func (s *couponAssignmentService) GetOrCreate(ctx context.Context, couponID, recipientID string) (*couponassignment.CouponAssignment, error) {
	a, err := s.CouponAssignmentRepo.GetByPair(ctx, couponID, recipientID)
	if err == nil {
		return a, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	a = couponassignment.New(couponID, recipientID, types.GetDefaultBaseModel(ctx))
	err = s.DB.WithTx(ctx, func(spCtx context.Context) error {
		return s.CouponAssignmentRepo.Create(spCtx, a)
	})
	if err == nil {
		s.Logger.Debugw("coupon assignment created on lookup",
			"coupon_id", couponID,
			"assignment_id", a.ID,
			"recipient_id", recipientID,
		)
		return a, nil
	}
	if !ierr.IsAlreadyExists(err) {
		return nil, err
	}

	// lost the insert race, the winner's row is visible now
	return s.CouponAssignmentRepo.GetByPair(ctx, couponID, recipientID)
}

func (s *couponAssignmentService) MarkConsumed(ctx context.Context, assignmentID, reservationID string, at time.Time) error {
	if err := s.CouponAssignmentRepo.MarkConsumed(ctx, assignmentID, reservationID, at); err != nil {
		return err
	}
	s.Logger.Infow("coupon assignment consumed", "assignment_id", assignmentID, "reservation_id", reservationID)
	return nil
}

func (s *couponAssignmentService) SetAuthorized(ctx context.Context, id string, authorized bool) (*dto.CouponAssignmentResponse, error) {
	if err := s.CouponAssignmentRepo.SetAuthorized(ctx, id, authorized); err != nil {
		return nil, err
	}

	a, err := s.CouponAssignmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("coupon assignment authorization changed", "assignment_id", id, "authorized", authorized)
	return &dto.CouponAssignmentResponse{CouponAssignment: a}, nil
}

func (s *couponAssignmentService) ListCouponAssignments(ctx context.Context, filter *types.CouponAssignmentFilter) (*dto.ListCouponAssignmentsResponse, error) {
	if filter == nil {
		filter = types.NewCouponAssignmentFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	assignments, err := s.CouponAssignmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.CouponAssignmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(assignments, func(a *couponassignment.CouponAssignment, _ int) *dto.CouponAssignmentResponse {
		return &dto.CouponAssignmentResponse{CouponAssignment: a}
	})
	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

// ListMyCoupons returns the caller's assignments with their coupon terms
func (s *couponAssignmentService) ListMyCoupons(ctx context.Context) (*dto.ListCouponAssignmentsResponse, error) {
	recipientID := types.GetUserID(ctx)
	if recipientID == "" {
		return nil, ierr.NewError("user ID is required").
			WithHint("Please sign in").
			Mark(ierr.ErrUnauthorized)
	}

	filter := types.NewNoLimitCouponAssignmentFilter()
	filter.RecipientID = recipientID
	assignments, err := s.CouponAssignmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	coupons := make(map[string]*dto.CouponResponse)
	items := make([]*dto.CouponAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		resp, ok := coupons[a.CouponID]
		if !ok {
			c, err := s.CouponRepo.Get(ctx, a.CouponID)
			if err != nil {
				return nil, err
			}
			consumed, err := s.CouponAssignmentRepo.CountConsumed(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			resp = dto.NewCouponResponse(c, consumed, now)
			coupons[a.CouponID] = resp
		}
		items = append(items, &dto.CouponAssignmentResponse{CouponAssignment: a, Coupon: resp})
	}

	response := types.NewListResponse(items, len(items), 0, 0)
	return &response, nil
}

func (s *couponAssignmentService) ValidateCouponCode(ctx context.Context, code string) (*dto.ValidateCouponResponse, error) {
	recipientID := types.GetUserID(ctx)
	if recipientID == "" {
		return nil, ierr.NewError("user ID is required").
			WithHint("Please sign in").
			Mark(ierr.ErrUnauthorized)
	}
	if code == "" {
		return nil, ierr.NewError("code is required").
			WithHint("Coupon code is required").
			Mark(ierr.ErrValidation)
	}

	var c *coupon.Coupon
	var a *couponassignment.CouponAssignment
	var consumed int
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		c, err = s.CouponRepo.GetByCode(txCtx, code)
		if err != nil {
			return err
		}
		a, err = s.GetOrCreate(txCtx, c.ID, recipientID)
		if err != nil {
			return err
		}
		consumed, err = s.CouponAssignmentRepo.CountConsumed(txCtx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	eligibility := evaluateEligibility(PricingInput{
		Stay:          StayDraft{RecipientID: recipientID},
		Coupon:        c,
		Assignment:    a,
		ConsumedCount: consumed,
		Now:           now,
	})

	s.Logger.Debugw("coupon code validated",
		"coupon_id", c.ID,
		"recipient_id", recipientID,
		"outcome", eligibility,
	)

	couponResp := dto.NewCouponResponse(c, consumed, now)
	return &dto.ValidateCouponResponse{
		Coupon:      couponResp,
		Assignment:  &dto.CouponAssignmentResponse{CouponAssignment: a},
		Eligibility: eligibility,
		Reason:      eligibility.Reason(),
	}, nil
}
