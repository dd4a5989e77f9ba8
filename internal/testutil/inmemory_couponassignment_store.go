package testutil

import (
	"context"
	"time"

	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
)

// InMemoryCouponAssignmentStore implements couponassignment.Repository with
// the (coupon, recipient) unique constraint and the conditional consume.
type InMemoryCouponAssignmentStore struct {
	*InMemoryStore[*couponassignment.CouponAssignment]
}

func NewInMemoryCouponAssignmentStore() *InMemoryCouponAssignmentStore {
	return &InMemoryCouponAssignmentStore{
		InMemoryStore: NewInMemoryStore[*couponassignment.CouponAssignment](),
	}
}

func (s *InMemoryCouponAssignmentStore) Create(ctx context.Context, a *couponassignment.CouponAssignment) error {
	err := s.InMemoryStore.CreateUnique(ctx, a.ID, clone(a), func(existing *couponassignment.CouponAssignment) bool {
		return existing.BelongsTo(a.CouponID, a.RecipientID)
	})
	return withHint(err, "Coupon is already assigned to this user")
}

func (s *InMemoryCouponAssignmentStore) Get(ctx context.Context, id string) (*couponassignment.CouponAssignment, error) {
	a, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFound("coupon assignment", id)
	}
	return clone(a), nil
}

func (s *InMemoryCouponAssignmentStore) GetForUpdate(ctx context.Context, id string) (*couponassignment.CouponAssignment, error) {
	return s.Get(ctx, id)
}

func (s *InMemoryCouponAssignmentStore) GetByPair(ctx context.Context, couponID, recipientID string) (*couponassignment.CouponAssignment, error) {
	a, ok := s.InMemoryStore.Find(ctx, func(a *couponassignment.CouponAssignment) bool {
		return a.BelongsTo(couponID, recipientID)
	})
	if !ok {
		return nil, notFound("coupon assignment", couponID+"/"+recipientID)
	}
	return clone(a), nil
}

func (s *InMemoryCouponAssignmentStore) List(ctx context.Context, filter *types.CouponAssignmentFilter) ([]*couponassignment.CouponAssignment, error) {
	if filter == nil {
		filter = types.NewCouponAssignmentFilter()
	}
	items, err := s.InMemoryStore.List(ctx, filter.QueryFilter, couponAssignmentMatcher(filter), func(a, b *couponassignment.CouponAssignment) bool {
		return byCreatedAtDesc(a.BaseModel, b.BaseModel)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryCouponAssignmentStore) Count(ctx context.Context, filter *types.CouponAssignmentFilter) (int, error) {
	if filter == nil {
		filter = types.NewCouponAssignmentFilter()
	}
	return s.InMemoryStore.Count(ctx, couponAssignmentMatcher(filter))
}

func couponAssignmentMatcher(filter *types.CouponAssignmentFilter) MatchFunc[*couponassignment.CouponAssignment] {
	return func(a *couponassignment.CouponAssignment) bool {
		if !matchesStatus(filter.QueryFilter, a.Status) {
			return false
		}
		if filter.CouponID != "" && a.CouponID != filter.CouponID {
			return false
		}
		if filter.RecipientID != "" && a.RecipientID != filter.RecipientID {
			return false
		}
		return filter.Consumed == nil || a.Consumed == *filter.Consumed
	}
}

func (s *InMemoryCouponAssignmentStore) MarkConsumed(ctx context.Context, id, reservationID string, at time.Time) error {
	return s.InMemoryStore.Modify(ctx, id, func(a *couponassignment.CouponAssignment) (*couponassignment.CouponAssignment, error) {
		if a.Consumed {
			return nil, ierr.NewError("coupon assignment already consumed").
				WithHint("Coupon has already been used").
				WithReportableDetails(map[string]any{
					"assignment_id":  id,
					"reservation_id": reservationID,
				}).
				Mark(ierr.ErrConflict)
		}
		updated := clone(a)
		updated.Consumed = true
		updated.ConsumedAt = &at
		updated.ReservationID = &reservationID
		updated.UpdatedAt = at
		updated.UpdatedBy = types.GetUserID(ctx)
		return updated, nil
	})
}

func (s *InMemoryCouponAssignmentStore) SetAuthorized(ctx context.Context, id string, authorized bool) error {
	err := s.InMemoryStore.Modify(ctx, id, func(a *couponassignment.CouponAssignment) (*couponassignment.CouponAssignment, error) {
		updated := clone(a)
		updated.Authorized = authorized
		updated.UpdatedAt = time.Now().UTC()
		updated.UpdatedBy = types.GetUserID(ctx)
		return updated, nil
	})
	if err != nil {
		return notFound("coupon assignment", id)
	}
	return nil
}

func (s *InMemoryCouponAssignmentStore) CountConsumed(ctx context.Context, couponID string) (int, error) {
	return s.InMemoryStore.Count(ctx, func(a *couponassignment.CouponAssignment) bool {
		return a.CouponID == couponID && a.Consumed
	})
}

// Release clears a consumption; it exists only to set up test scenarios
func (s *InMemoryCouponAssignmentStore) Release(ctx context.Context, id string) error {
	return s.InMemoryStore.Modify(ctx, id, func(a *couponassignment.CouponAssignment) (*couponassignment.CouponAssignment, error) {
		updated := clone(a)
		updated.Consumed = false
		updated.ConsumedAt = nil
		updated.ReservationID = nil
		return updated, nil
	})
}
