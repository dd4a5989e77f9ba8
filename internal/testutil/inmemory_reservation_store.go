package testutil

import (
	"context"
	"sort"

	"github.com/hotelhub/hotelhub/internal/domain/reservation"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryReservationStore implements reservation.Repository
type InMemoryReservationStore struct {
	*InMemoryStore[*reservation.Reservation]
}

func NewInMemoryReservationStore() *InMemoryReservationStore {
	return &InMemoryReservationStore{
		InMemoryStore: NewInMemoryStore[*reservation.Reservation](),
	}
}

func (s *InMemoryReservationStore) Create(ctx context.Context, r *reservation.Reservation) error {
	return withHint(s.InMemoryStore.Create(ctx, r.ID, clone(r)), "Failed to create reservation")
}

func (s *InMemoryReservationStore) Get(ctx context.Context, id string) (*reservation.Reservation, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, notFound("reservation", id)
	}
	return clone(r), nil
}

func (s *InMemoryReservationStore) List(ctx context.Context, filter *types.ReservationFilter) ([]*reservation.Reservation, error) {
	if filter == nil {
		filter = types.NewReservationFilter()
	}
	items, err := s.InMemoryStore.List(ctx, filter.QueryFilter, reservationMatcher(filter), func(a, b *reservation.Reservation) bool {
		return byCreatedAtDesc(a.BaseModel, b.BaseModel)
	})
	if err != nil {
		return nil, err
	}
	return cloneAll(items), nil
}

func (s *InMemoryReservationStore) Count(ctx context.Context, filter *types.ReservationFilter) (int, error) {
	if filter == nil {
		filter = types.NewReservationFilter()
	}
	return s.InMemoryStore.Count(ctx, reservationMatcher(filter))
}

func (s *InMemoryReservationStore) Update(ctx context.Context, r *reservation.Reservation) error {
	if err := s.InMemoryStore.Update(ctx, r.ID, clone(r)); err != nil {
		return notFound("reservation", r.ID)
	}
	return nil
}

func (s *InMemoryReservationStore) SummarizeByRecipient(ctx context.Context) ([]*reservation.RecipientSummary, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(r *reservation.Reservation) bool {
		return r.Status == types.StatusPublished
	}, nil)
	if err != nil {
		return nil, err
	}

	byRecipient := make(map[string]*reservation.RecipientSummary)
	for _, r := range items {
		summary, ok := byRecipient[r.RecipientID]
		if !ok {
			summary = &reservation.RecipientSummary{RecipientID: r.RecipientID, TotalSpent: decimal.Zero}
			byRecipient[r.RecipientID] = summary
		}
		summary.ReservationCount++
		if r.ReservationStatus != types.ReservationStatusCancelled {
			summary.TotalSpent = summary.TotalSpent.Add(r.NetTotal)
		}
	}

	summaries := lo.Values(byRecipient)
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].RecipientID < summaries[j].RecipientID
	})
	return summaries, nil
}

func reservationMatcher(filter *types.ReservationFilter) MatchFunc[*reservation.Reservation] {
	return func(r *reservation.Reservation) bool {
		if !matchesStatus(filter.QueryFilter, r.Status) {
			return false
		}
		if len(filter.ReservationIDs) > 0 && !lo.Contains(filter.ReservationIDs, r.ID) {
			return false
		}
		if filter.RecipientID != "" && r.RecipientID != filter.RecipientID {
			return false
		}
		if filter.RoomID != "" && r.RoomID != filter.RoomID {
			return false
		}
		if len(filter.ReservationStatus) > 0 && !lo.Contains(filter.ReservationStatus, r.ReservationStatus) {
			return false
		}
		if filter.TimeRangeFilter != nil {
			if filter.StartTime != nil && !r.CheckOut.After(*filter.StartTime) {
				return false
			}
			if filter.EndTime != nil && !r.CheckIn.Before(*filter.EndTime) {
				return false
			}
		}
		return true
	}
}
