package postgres

import (
	"context"
	"time"

	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/types"
)

const couponAssignmentColumns = `id, coupon_id, recipient_id, authorized, consumed, consumed_at, reservation_id, status, created_at, updated_at, created_by, updated_by`

const couponAssignmentByIDQuery = `SELECT ` + couponAssignmentColumns + ` FROM coupon_assignments WHERE id = $1`

type couponAssignmentRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCouponAssignmentRepository(client postgres.IClient, log *logger.Logger) couponassignment.Repository {
	return &couponAssignmentRepository{client: client, log: log}
}

func (r *couponAssignmentRepository) Create(ctx context.Context, a *couponassignment.CouponAssignment) error {
	r.log.Debugw("creating coupon assignment",
		"assignment_id", a.ID,
		"coupon_id", a.CouponID,
		"recipient_id", a.RecipientID,
	)

	query := `INSERT INTO coupon_assignments (` + couponAssignmentColumns + `) VALUES (
		:id, :coupon_id, :recipient_id, :authorized, :consumed, :consumed_at, :reservation_id,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`
	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, a); err != nil {
		details := map[string]any{
			"coupon_id":    a.CouponID,
			"recipient_id": a.RecipientID,
		}
		switch {
		case postgres.IsUniqueViolation(err):
			return ierr.WithError(err).
				WithHint("Coupon is already assigned to this user").
				WithReportableDetails(details).
				Mark(ierr.ErrAlreadyExists)
		case postgres.IsForeignKeyViolation(err):
			return ierr.WithError(err).
				WithHint("Coupon or user does not exist").
				WithReportableDetails(details).
				Mark(ierr.ErrNotFound)
		}
		return ierr.WithError(err).
			WithHint("Failed to create coupon assignment").
			Mark(postgres.ErrorKind(err))
	}
	return nil
}

func (r *couponAssignmentRepository) Get(ctx context.Context, id string) (*couponassignment.CouponAssignment, error) {
	return r.get(ctx, couponAssignmentByIDQuery, id)
}

func (r *couponAssignmentRepository) GetForUpdate(ctx context.Context, id string) (*couponassignment.CouponAssignment, error) {
	return r.get(ctx, couponAssignmentByIDQuery+lockForRedemption, id)
}

func (r *couponAssignmentRepository) GetByPair(ctx context.Context, couponID, recipientID string) (*couponassignment.CouponAssignment, error) {
	return r.get(ctx,
		`SELECT `+couponAssignmentColumns+` FROM coupon_assignments WHERE coupon_id = $1 AND recipient_id = $2`,
		couponID, recipientID)
}

func (r *couponAssignmentRepository) get(ctx context.Context, query string, args ...interface{}) (*couponassignment.CouponAssignment, error) {
	var a couponassignment.CouponAssignment
	if err := r.client.Querier(ctx).GetContext(ctx, &a, query, args...); err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.WithError(err).
				WithHint("Coupon assignment not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon assignment").
			Mark(postgres.ErrorKind(err))
	}
	return &a, nil
}

func (r *couponAssignmentRepository) List(ctx context.Context, filter *types.CouponAssignmentFilter) ([]*couponassignment.CouponAssignment, error) {
	if filter == nil {
		filter = types.NewCouponAssignmentFilter()
	}
	q := r.client.Querier(ctx)

	b := couponAssignmentConditions(filter)
	query := b.paginate(`SELECT `+couponAssignmentColumns+` FROM coupon_assignments`+b.clause(),
		baseFilter(filter.QueryFilter), "created_at", "consumed_at")

	var assignments []*couponassignment.CouponAssignment
	if err := q.SelectContext(ctx, &assignments, q.Rebind(query), b.args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list coupon assignments").
			Mark(postgres.ErrorKind(err))
	}
	return assignments, nil
}

func (r *couponAssignmentRepository) Count(ctx context.Context, filter *types.CouponAssignmentFilter) (int, error) {
	if filter == nil {
		filter = types.NewCouponAssignmentFilter()
	}
	q := r.client.Querier(ctx)

	b := couponAssignmentConditions(filter)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT COUNT(*) FROM coupon_assignments`+b.clause()), b.args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count coupon assignments").
			Mark(postgres.ErrorKind(err))
	}
	return count, nil
}

func couponAssignmentConditions(filter *types.CouponAssignmentFilter) *queryBuilder {
	b := &queryBuilder{}
	b.whereStatus(baseFilter(filter.QueryFilter))
	if filter.CouponID != "" {
		b.where("coupon_id = ?", filter.CouponID)
	}
	if filter.RecipientID != "" {
		b.where("recipient_id = ?", filter.RecipientID)
	}
	if filter.Consumed != nil {
		b.where("consumed = ?", *filter.Consumed)
	}
	return b
}

// MarkConsumed is a conditional update: only a row still unconsumed is
// touched, so concurrent callers cannot both succeed.
func (r *couponAssignmentRepository) MarkConsumed(ctx context.Context, id, reservationID string, at time.Time) error {
	q := r.client.Querier(ctx)

	result, err := q.ExecContext(ctx, `UPDATE coupon_assignments SET
			consumed = true,
			consumed_at = $2,
			reservation_id = $3,
			updated_at = $2,
			updated_by = $4
		WHERE id = $1 AND consumed = false`,
		id, at, reservationID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to consume coupon assignment").
			Mark(postgres.ErrorKind(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to consume coupon assignment").
			Mark(postgres.ErrorKind(err))
	}
	if rows == 1 {
		r.log.Debugw("consumed coupon assignment", "assignment_id", id, "reservation_id", reservationID)
		return nil
	}

	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return ierr.NewError("coupon assignment already consumed").
		WithHint(types.ReasonConflict).
		WithReportableDetails(map[string]any{"assignment_id": id}).
		Mark(ierr.ErrConflict)
}

func (r *couponAssignmentRepository) SetAuthorized(ctx context.Context, id string, authorized bool) error {
	result, err := r.client.Querier(ctx).ExecContext(ctx,
		`UPDATE coupon_assignments SET authorized = $2, updated_at = $3, updated_by = $4 WHERE id = $1`,
		id, authorized, time.Now().UTC(), types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update coupon assignment").
			Mark(postgres.ErrorKind(err))
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("coupon assignment not found").
			WithHint("Coupon assignment not found").
			WithReportableDetails(map[string]any{"assignment_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *couponAssignmentRepository) CountConsumed(ctx context.Context, couponID string) (int, error) {
	var count int
	err := r.client.Querier(ctx).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM coupon_assignments WHERE coupon_id = $1 AND consumed`, couponID)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count consumed coupon assignments").
			Mark(postgres.ErrorKind(err))
	}
	return count, nil
}
