package dto

import (
	"context"
	"strings"
	"time"

	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/hotelhub/hotelhub/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest represents the request to create a new coupon.
// A blank code is generated.
type CreateCouponRequest struct {
	Code         string             `json:"code,omitempty" validate:"omitempty,max=32"`
	Description  string             `json:"description,omitempty" validate:"omitempty,max=1000"`
	DiscountType types.DiscountType `json:"discount_type" validate:"required"`
	Value        decimal.Decimal    `json:"value"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
	MaxUses      int                `json:"max_uses"`
	Active       *bool              `json:"active,omitempty"`
}

func (r *CreateCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return ierr.NewError("start_date and end_date are required").
			WithHint("Please provide the coupon validity window").
			Mark(ierr.ErrValidation)
	}

	draft := coupon.Coupon{
		Code:         lo.Ternary(r.Code == "", types.SHORT_ID_PREFIX_COUPON, r.Code),
		DiscountType: r.DiscountType,
		Value:        r.Value,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		MaxUses:      r.MaxUses,
	}
	return draft.Validate()
}

func (r *CreateCouponRequest) ToCoupon(ctx context.Context) *coupon.Coupon {
	code := strings.ToUpper(strings.TrimSpace(r.Code))
	if code == "" {
		code = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_COUPON)
	}

	var creatorID *string
	if userID := types.GetUserID(ctx); userID != "" {
		creatorID = lo.ToPtr(userID)
	}

	return &coupon.Coupon{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COUPON),
		Code:         code,
		Description:  r.Description,
		DiscountType: r.DiscountType,
		Value:        r.Value,
		StartDate:    r.StartDate.UTC(),
		EndDate:      r.EndDate.UTC(),
		MaxUses:      r.MaxUses,
		Active:       lo.FromPtrOr(r.Active, true),
		CreatorID:    creatorID,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

// UpdateCouponRequest edits the terms of a coupon. Discount type and code are
// fixed once created.
type UpdateCouponRequest struct {
	Description *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	MaxUses     *int             `json:"max_uses,omitempty"`
}

func (r *UpdateCouponRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ApplyTo copies the set fields onto c. The result still needs c.Validate().
func (r *UpdateCouponRequest) ApplyTo(c *coupon.Coupon) {
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Value != nil {
		c.Value = *r.Value
	}
	if r.StartDate != nil {
		c.StartDate = r.StartDate.UTC()
	}
	if r.EndDate != nil {
		c.EndDate = r.EndDate.UTC()
	}
	if r.MaxUses != nil {
		c.MaxUses = *r.MaxUses
	}
}

// CouponResponse represents the response for coupon operations
type CouponResponse struct {
	*coupon.Coupon
	RemainingUses  int  `json:"remaining_uses"`
	CurrentlyValid bool `json:"currently_valid"`
}

func NewCouponResponse(c *coupon.Coupon, consumed int, now time.Time) *CouponResponse {
	return &CouponResponse{
		Coupon:         c,
		RemainingUses:  c.RemainingUses(consumed),
		CurrentlyValid: c.IsCurrentlyValid(now),
	}
}

// ListCouponsResponse represents the response for listing coupons
type ListCouponsResponse = types.ListResponse[*CouponResponse]

// AssignCouponRequest grants a coupon to one or more recipients
type AssignCouponRequest struct {
	RecipientIDs []string `json:"recipient_ids" validate:"required,min=1,max=500,dive,required"`
}

func (r *AssignCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	r.RecipientIDs = lo.Uniq(r.RecipientIDs)
	return nil
}

type AssignCouponResponse struct {
	Assigned []*CouponAssignmentResponse `json:"assigned"`
	// Skipped lists recipients that already held the coupon
	Skipped []string `json:"skipped"`
}

type CouponAssignmentResponse struct {
	*couponassignment.CouponAssignment
	Coupon *CouponResponse `json:"coupon,omitempty"`
}

type ListCouponAssignmentsResponse = types.ListResponse[*CouponAssignmentResponse]

type SetAuthorizedRequest struct {
	Authorized bool `json:"authorized"`
}

// ValidateCouponResponse describes whether the caller could redeem a code now
type ValidateCouponResponse struct {
	Coupon      *CouponResponse           `json:"coupon"`
	Assignment  *CouponAssignmentResponse `json:"assignment"`
	Eligibility types.Eligibility         `json:"eligibility"`
	Reason      string                    `json:"reason"`
}
