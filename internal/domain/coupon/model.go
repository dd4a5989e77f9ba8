package coupon

import (
	"time"

	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Coupon is a discount definition with a validity window and a usage budget
type Coupon struct {
	ID           string             `db:"id" json:"id"`
	Code         string             `db:"code" json:"code"`
	Description  string             `db:"description" json:"description"`
	DiscountType types.DiscountType `db:"discount_type" json:"discount_type"`
	Value        decimal.Decimal    `db:"value" json:"value"`
	StartDate    time.Time          `db:"start_date" json:"start_date"`
	EndDate      time.Time          `db:"end_date" json:"end_date"`
	MaxUses      int                `db:"max_uses" json:"max_uses"`
	Active       bool               `db:"active" json:"active"`
	// CreatorID is cleared when the creating user is deleted
	CreatorID *string `db:"creator_id" json:"creator_id,omitempty"`
	types.BaseModel
}

// Validate enforces the catalog invariants on create and update
func (c *Coupon) Validate() error {
	if c.Code == "" {
		return ierr.NewError("coupon code is required").
			WithHint("Coupon code is required").
			Mark(ierr.ErrValidation)
	}
	if err := c.DiscountType.Validate(); err != nil {
		return err
	}
	if !c.Value.IsPositive() {
		return ierr.NewError("coupon value must be positive").
			WithHint("Coupon value must be greater than zero").
			WithReportableDetails(map[string]any{"value": c.Value.String()}).
			Mark(ierr.ErrValidation)
	}
	if c.DiscountType == types.DiscountTypePercentage && c.Value.GreaterThan(hundred) {
		return ierr.NewError("percentage coupon value exceeds 100").
			WithHint("Percentage discount cannot exceed 100").
			WithReportableDetails(map[string]any{"value": c.Value.String()}).
			Mark(ierr.ErrValidation)
	}
	if !c.EndDate.After(c.StartDate) {
		return ierr.NewError("coupon end date must be after start date").
			WithHint("End date must be after start date").
			WithReportableDetails(map[string]any{
				"start_date": c.StartDate,
				"end_date":   c.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	if c.MaxUses <= 0 {
		return ierr.NewError("coupon max uses must be positive").
			WithHint("Maximum uses must be greater than zero").
			WithReportableDetails(map[string]any{"max_uses": c.MaxUses}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsCurrentlyValid is true iff the coupon is active and start <= now <= end
func (c *Coupon) IsCurrentlyValid(now time.Time) bool {
	return c.Active && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// RemainingUses subtracts consumed assignments from the budget. Values at or
// below zero mean the coupon is exhausted.
func (c *Coupon) RemainingUses(consumed int) int {
	return c.MaxUses - consumed
}

// CalculateDiscount returns the discount for gross, rounded to cents and
// never more than gross.
func (c *Coupon) CalculateDiscount(gross decimal.Decimal) decimal.Decimal {
	if !gross.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case types.DiscountTypePercentage:
		discount = gross.Mul(c.Value).Div(hundred).Round(2)
	case types.DiscountTypeFixed:
		discount = decimal.Min(c.Value, gross)
	default:
		return decimal.Zero
	}

	return decimal.Min(discount, gross)
}
