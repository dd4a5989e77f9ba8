package couponassignment

import (
	"context"
	"time"

	"github.com/hotelhub/hotelhub/internal/types"
)

type Repository interface {
	// Create fails with ErrAlreadyExists when the pair is already assigned
	Create(ctx context.Context, assignment *CouponAssignment) error
	Get(ctx context.Context, id string) (*CouponAssignment, error)
	// GetForUpdate reads the row and holds a lock on it for the enclosing transaction
	GetForUpdate(ctx context.Context, id string) (*CouponAssignment, error)
	GetByPair(ctx context.Context, couponID, recipientID string) (*CouponAssignment, error)
	List(ctx context.Context, filter *types.CouponAssignmentFilter) ([]*CouponAssignment, error)
	Count(ctx context.Context, filter *types.CouponAssignmentFilter) (int, error)
	// MarkConsumed flips consumed from false to true. It fails with
	// ErrConflict when the assignment was already consumed.
	MarkConsumed(ctx context.Context, id, reservationID string, at time.Time) error
	SetAuthorized(ctx context.Context, id string, authorized bool) error
	CountConsumed(ctx context.Context, couponID string) (int, error)
}
