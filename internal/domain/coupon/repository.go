package coupon

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/types"
)

type Repository interface {
	Create(ctx context.Context, coupon *Coupon) error
	Get(ctx context.Context, id string) (*Coupon, error)
	// GetForUpdate locks the coupon row for the enclosing transaction so
	// budget checks against it are serialized
	GetForUpdate(ctx context.Context, id string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, filter *types.CouponFilter) ([]*Coupon, error)
	Count(ctx context.Context, filter *types.CouponFilter) (int, error)
	Update(ctx context.Context, coupon *Coupon) error
	// Delete removes the coupon together with its assignments
	Delete(ctx context.Context, id string) error
}
