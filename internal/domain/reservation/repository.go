package reservation

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/types"
)

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	Get(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter *types.ReservationFilter) ([]*Reservation, error)
	Count(ctx context.Context, filter *types.ReservationFilter) (int, error)
	Update(ctx context.Context, reservation *Reservation) error
	// SummarizeByRecipient counts reservations and sums net totals of the
	// non-cancelled ones, per recipient.
	SummarizeByRecipient(ctx context.Context) ([]*RecipientSummary, error)
}
