package postgres

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/reservation"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const reservationColumns = `id, recipient_id, room_id, check_in, check_out, reservation_status, coupon_id, coupon_assignment_id,
	nights, gross_total, discount_amount, net_total, eligibility, eligibility_reason,
	status, created_at, updated_at, created_by, updated_by`

type reservationRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewReservationRepository(client postgres.IClient, log *logger.Logger) reservation.Repository {
	return &reservationRepository{client: client, log: log}
}

func (r *reservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	r.log.Debugw("creating reservation",
		"reservation_id", res.ID,
		"recipient_id", res.RecipientID,
		"room_id", res.RoomID,
	)

	query := `INSERT INTO reservations (` + reservationColumns + `) VALUES (
		:id, :recipient_id, :room_id, :check_in, :check_out, :reservation_status, :coupon_id, :coupon_assignment_id,
		:nights, :gross_total, :discount_amount, :net_total, :eligibility, :eligibility_reason,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`
	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, res); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return ierr.WithError(err).
				WithHint("Referenced room, guest or coupon does not exist").
				WithReportableDetails(map[string]any{
					"constraint":   postgres.ConstraintName(err),
					"room_id":      res.RoomID,
					"recipient_id": res.RecipientID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHint("Failed to create reservation").
			Mark(postgres.ErrorKind(err))
	}
	return nil
}

func (r *reservationRepository) Get(ctx context.Context, id string) (*reservation.Reservation, error) {
	var res reservation.Reservation
	err := r.client.Querier(ctx).GetContext(ctx, &res,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1 AND status = $2`, id, types.StatusPublished)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Reservation %s not found", id).
				WithReportableDetails(map[string]any{"reservation_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get reservation").
			Mark(postgres.ErrorKind(err))
	}
	return &res, nil
}

func (r *reservationRepository) List(ctx context.Context, filter *types.ReservationFilter) ([]*reservation.Reservation, error) {
	if filter == nil {
		filter = types.NewReservationFilter()
	}
	q := r.client.Querier(ctx)
	b := r.conditions(filter)
	query := b.paginate(`SELECT `+reservationColumns+` FROM reservations`+b.clause(),
		baseFilter(filter.QueryFilter), "created_at", "check_in", "net_total")

	var reservations []*reservation.Reservation
	if err := q.SelectContext(ctx, &reservations, q.Rebind(query), b.args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list reservations").
			Mark(postgres.ErrorKind(err))
	}
	return reservations, nil
}

func (r *reservationRepository) Count(ctx context.Context, filter *types.ReservationFilter) (int, error) {
	if filter == nil {
		filter = types.NewReservationFilter()
	}
	q := r.client.Querier(ctx)
	b := r.conditions(filter)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT COUNT(*) FROM reservations`+b.clause()), b.args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count reservations").
			Mark(postgres.ErrorKind(err))
	}
	return count, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	r.log.Debugw("updating reservation",
		"reservation_id", res.ID,
		"reservation_status", res.ReservationStatus,
	)

	query := `UPDATE reservations SET
		room_id = :room_id,
		check_in = :check_in,
		check_out = :check_out,
		reservation_status = :reservation_status,
		coupon_id = :coupon_id,
		coupon_assignment_id = :coupon_assignment_id,
		nights = :nights,
		gross_total = :gross_total,
		discount_amount = :discount_amount,
		net_total = :net_total,
		eligibility = :eligibility,
		eligibility_reason = :eligibility_reason,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND status = 'published'`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, res)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update reservation").
			Mark(postgres.ErrorKind(err))
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("reservation not found").
			WithHintf("Reservation %s not found", res.ID).
			WithReportableDetails(map[string]any{"reservation_id": res.ID}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *reservationRepository) SummarizeByRecipient(ctx context.Context) ([]*reservation.RecipientSummary, error) {
	var summaries []*reservation.RecipientSummary
	err := r.client.Querier(ctx).SelectContext(ctx, &summaries, `
		SELECT
			recipient_id,
			COUNT(*) AS reservation_count,
			COALESCE(SUM(net_total) FILTER (WHERE reservation_status <> $1), 0) AS total_spent
		FROM reservations
		WHERE status = $2
		GROUP BY recipient_id
		ORDER BY recipient_id`,
		types.ReservationStatusCancelled, types.StatusPublished)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to summarize reservations").
			Mark(postgres.ErrorKind(err))
	}
	return summaries, nil
}

func (r *reservationRepository) conditions(filter *types.ReservationFilter) *queryBuilder {
	b := &queryBuilder{}
	b.whereStatus(baseFilter(filter.QueryFilter))
	b.whereIn("id", filter.ReservationIDs)
	if filter.RecipientID != "" {
		b.where("recipient_id = ?", filter.RecipientID)
	}
	if filter.RoomID != "" {
		b.where("room_id = ?", filter.RoomID)
	}
	if len(filter.ReservationStatus) > 0 {
		statuses := lo.Map(filter.ReservationStatus, func(s types.ReservationStatus, _ int) string {
			return string(s)
		})
		b.where("reservation_status = ANY(?)", pq.Array(statuses))
	}
	if filter.TimeRangeFilter != nil {
		if filter.StartTime != nil {
			b.where("check_out > ?", *filter.StartTime)
		}
		if filter.EndTime != nil {
			b.where("check_in < ?", *filter.EndTime)
		}
	}
	return b
}
