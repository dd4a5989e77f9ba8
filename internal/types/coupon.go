package types

import (
	ierr "github.com/hotelhub/hotelhub/internal/errors"
)

// DiscountType represents how a coupon value is applied to a gross total
type DiscountType string

const (
	// DiscountTypeFixed takes a flat amount off, capped at the gross total
	DiscountTypeFixed DiscountType = "fixed"
	// DiscountTypePercentage takes value/100 of the gross total
	DiscountTypePercentage DiscountType = "percentage"
)

func (t DiscountType) Validate() error {
	switch t {
	case DiscountTypeFixed, DiscountTypePercentage:
		return nil
	}
	return ierr.NewError("invalid discount type").
		WithHint("Discount type must be either fixed or percentage").
		WithReportableDetails(map[string]any{"discount_type": t}).
		Mark(ierr.ErrValidation)
}

type CouponFilter struct {
	*QueryFilter

	CouponIDs []string `json:"coupon_ids,omitempty" form:"coupon_ids"`
	Code      string   `json:"code,omitempty" form:"code"`
	Active    *bool    `json:"active,omitempty" form:"active"`
}

func NewCouponFilter() *CouponFilter {
	return &CouponFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *CouponFilter) Validate() error {
	if f.QueryFilter != nil {
		return f.QueryFilter.Validate()
	}
	return nil
}

type CouponAssignmentFilter struct {
	*QueryFilter

	CouponID    string `json:"coupon_id,omitempty" form:"coupon_id"`
	RecipientID string `json:"recipient_id,omitempty" form:"recipient_id"`
	Consumed    *bool  `json:"consumed,omitempty" form:"consumed"`
}

func NewCouponAssignmentFilter() *CouponAssignmentFilter {
	return &CouponAssignmentFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitCouponAssignmentFilter() *CouponAssignmentFilter {
	return &CouponAssignmentFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *CouponAssignmentFilter) Validate() error {
	if f.QueryFilter != nil {
		return f.QueryFilter.Validate()
	}
	return nil
}
