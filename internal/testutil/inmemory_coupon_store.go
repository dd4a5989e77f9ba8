package testutil

import (
	"context"
	"strings"

	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	"github.com/hotelhub/hotelhub/internal/domain/reservation"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
)

// InMemoryCouponStore implements coupon.Repository. Deletes cascade to the
// assignment store and clear reservation references like the foreign keys do.
type InMemoryCouponStore struct {
	*InMemoryStore[*coupon.Coupon]
	assignments  *InMemoryCouponAssignmentStore
	reservations *InMemoryReservationStore
}

func NewInMemoryCouponStore(assignments *InMemoryCouponAssignmentStore, reservations *InMemoryReservationStore) *InMemoryCouponStore {
	return &InMemoryCouponStore{
		InMemoryStore: NewInMemoryStore[*coupon.Coupon](),
		assignments:   assignments,
		reservations:  reservations,
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *InMemoryCouponStore) Create(ctx context.Context, c *coupon.Coupon) error {
	code := normalizeCode(c.Code)
	err := s.InMemoryStore.CreateUnique(ctx, c.ID, clone(c), func(existing *coupon.Coupon) bool {
		return normalizeCode(existing.Code) == code
	})
	return withHint(err, "A coupon with this code already exists")
}

func (s *InMemoryCouponStore) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFound("coupon", id)
	}
	return clone(c), nil
}

// GetForUpdate relies on MockPostgresClient serializing transactions
func (s *InMemoryCouponStore) GetForUpdate(ctx context.Context, id string) (*coupon.Coupon, error) {
	return s.Get(ctx, id)
}

func (s *InMemoryCouponStore) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	code = normalizeCode(code)
	c, ok := s.InMemoryStore.Find(ctx, func(c *coupon.Coupon) bool {
		return normalizeCode(c.Code) == code
	})
	if !ok {
		return nil, notFound("coupon", code)
	}
	return clone(c), nil
}

func (s *InMemoryCouponStore) List(ctx context.Context, filter *types.CouponFilter) ([]*coupon.Coupon, error) {
	if filter == nil {
		filter = types.NewCouponFilter()
	}
	items, err := s.InMemoryStore.List(ctx, filter.QueryFilter, couponMatcher(filter), func(a, b *coupon.Coupon) bool {
		return byCreatedAtDesc(a.BaseModel, b.BaseModel)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryCouponStore) Count(ctx context.Context, filter *types.CouponFilter) (int, error) {
	if filter == nil {
		filter = types.NewCouponFilter()
	}
	return s.InMemoryStore.Count(ctx, couponMatcher(filter))
}

func (s *InMemoryCouponStore) Update(ctx context.Context, c *coupon.Coupon) error {
	if err := s.InMemoryStore.Update(ctx, c.ID, clone(c)); err != nil {
		return notFound("coupon", c.ID)
	}
	return nil
}

func (s *InMemoryCouponStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return notFound("coupon", id)
	}

	var removed []string
	if s.assignments != nil {
		s.assignments.DeleteAll(ctx, func(a *couponassignment.CouponAssignment) bool {
			if a.CouponID == id {
				removed = append(removed, a.ID)
				return true
			}
			return false
		})
	}

	if s.reservations != nil {
		s.reservations.ModifyAll(ctx, func(r *reservation.Reservation) bool {
			return (r.CouponID != nil && *r.CouponID == id) ||
				(r.CouponAssignmentID != nil && lo.Contains(removed, *r.CouponAssignmentID))
		}, func(r *reservation.Reservation) *reservation.Reservation {
			updated := clone(r)
			updated.CouponID = nil
			updated.CouponAssignmentID = nil
			return updated
		})
	}
	return nil
}

func couponMatcher(filter *types.CouponFilter) MatchFunc[*coupon.Coupon] {
	return func(c *coupon.Coupon) bool {
		if !matchesStatus(filter.QueryFilter, c.Status) {
			return false
		}
		if len(filter.CouponIDs) > 0 && !lo.Contains(filter.CouponIDs, c.ID) {
			return false
		}
		if filter.Code != "" && c.Code != normalizeCode(filter.Code) {
			return false
		}
		if filter.Active != nil && c.Active != *filter.Active {
			return false
		}
		return true
	}
}
