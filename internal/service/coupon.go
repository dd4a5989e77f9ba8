package service

import (
	"context"
	"time"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
)

// CouponService manages coupon definitions
type CouponService interface {
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error)
	GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error)
	GetCouponByCode(ctx context.Context, code string) (*dto.CouponResponse, error)
	ListCoupons(ctx context.Context, filter *types.CouponFilter) (*dto.ListCouponsResponse, error)
	UpdateCoupon(ctx context.Context, id string, req dto.UpdateCouponRequest) (*dto.CouponResponse, error)
	SetCouponActive(ctx context.Context, id string, active bool) (*dto.CouponResponse, error)
	DeleteCoupon(ctx context.Context, id string) error
	RemainingUses(ctx context.Context, c *coupon.Coupon) (int, error)
}

type couponService struct {
	ServiceParams
}

func NewCouponService(params ServiceParams) CouponService {
	return &couponService{
		ServiceParams: params,
	}
}

func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToCoupon(ctx)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CouponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("coupon created",
		"coupon_id", c.ID,
		"code", c.Code,
		"discount_type", c.DiscountType,
		"value", c.Value.String(),
	)
	return dto.NewCouponResponse(c, 0, time.Now().UTC()), nil
}

func (s *couponService) GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error) {
	if id == "" {
		return nil, ierr.NewError("coupon_id is required").
			WithHint("Coupon ID is required").
			Mark(ierr.ErrValidation)
	}

	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toCouponResponse(ctx, c)
}

func (s *couponService) GetCouponByCode(ctx context.Context, code string) (*dto.CouponResponse, error) {
	if code == "" {
		return nil, ierr.NewError("code is required").
			WithHint("Coupon code is required").
			Mark(ierr.ErrValidation)
	}

	c, err := s.CouponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.toCouponResponse(ctx, c)
}

func (s *couponService) ListCoupons(ctx context.Context, filter *types.CouponFilter) (*dto.ListCouponsResponse, error) {
	if filter == nil {
		filter = types.NewCouponFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	coupons, err := s.CouponRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.CouponRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		resp, err := s.toCouponResponse(ctx, c)
		if err != nil {
			return nil, err
		}
		items = append(items, resp)
	}

	response := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, id string, req dto.UpdateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var c *coupon.Coupon
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		c, err = s.CouponRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		req.ApplyTo(c)
		if err := c.Validate(); err != nil {
			return err
		}

		c.UpdatedBy = types.GetUserID(txCtx)
		return s.CouponRepo.Update(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("coupon updated", "coupon_id", c.ID, "code", c.Code)
	return s.toCouponResponse(ctx, c)
}

func (s *couponService) SetCouponActive(ctx context.Context, id string, active bool) (*dto.CouponResponse, error) {
	var c *coupon.Coupon
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		c, err = s.CouponRepo.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if c.Active == active {
			return nil
		}

		c.Active = active
		c.UpdatedBy = types.GetUserID(txCtx)
		return s.CouponRepo.Update(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("coupon activation changed", "coupon_id", c.ID, "active", active)
	return s.toCouponResponse(ctx, c)
}

// DeleteCoupon removes the coupon and its assignments. Reservations that used
// it keep their totals.
func (s *couponService) DeleteCoupon(ctx context.Context, id string) error {
	if err := s.CouponRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("coupon deleted", "coupon_id", id)
	return nil
}

func (s *couponService) RemainingUses(ctx context.Context, c *coupon.Coupon) (int, error) {
	consumed, err := s.CouponAssignmentRepo.CountConsumed(ctx, c.ID)
	if err != nil {
		return 0, err
	}
	return c.RemainingUses(consumed), nil
}

func (s *couponService) toCouponResponse(ctx context.Context, c *coupon.Coupon) (*dto.CouponResponse, error) {
	consumed, err := s.CouponAssignmentRepo.CountConsumed(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewCouponResponse(c, consumed, time.Now().UTC()), nil
}
