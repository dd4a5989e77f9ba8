package postgres

import (
	"context"
	"strings"

	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/types"
)

const couponColumns = `id, code, description, discount_type, value, start_date, end_date, max_uses, active, creator_id, status, created_at, updated_at, created_by, updated_by`

type couponRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCouponRepository(client postgres.IClient, log *logger.Logger) coupon.Repository {
	return &couponRepository{client: client, log: log}
}

func (r *couponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	r.log.Debugw("creating coupon", "coupon_id", c.ID, "code", c.Code)

	query := `INSERT INTO coupons (` + couponColumns + `) VALUES (
		:id, :code, :description, :discount_type, :value, :start_date, :end_date, :max_uses, :active, :creator_id,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`
	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, c); err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A coupon with this code already exists").
				WithReportableDetails(map[string]any{"code": c.Code}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create coupon").
			Mark(postgres.ErrorKind(err))
	}
	return nil
}

func (r *couponRepository) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	return r.getBy(ctx, "id", id, "")
}

func (r *couponRepository) GetForUpdate(ctx context.Context, id string) (*coupon.Coupon, error) {
	return r.getBy(ctx, "id", id, lockForRedemption)
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return r.getBy(ctx, "code", strings.ToUpper(strings.TrimSpace(code)), "")
}

func (r *couponRepository) getBy(ctx context.Context, column, value, lock string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	err := r.client.Querier(ctx).GetContext(ctx, &c, couponQuery(column, lock), value, types.StatusPublished)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.WithError(err).
				WithHint("Coupon not found").
				WithReportableDetails(map[string]any{column: value}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon").
			Mark(postgres.ErrorKind(err))
	}
	return &c, nil
}

func couponQuery(column, lock string) string {
	return `SELECT ` + couponColumns + ` FROM coupons WHERE ` + column + ` = $1 AND status = $2` + lock
}

func (r *couponRepository) List(ctx context.Context, filter *types.CouponFilter) ([]*coupon.Coupon, error) {
	if filter == nil {
		filter = types.NewCouponFilter()
	}
	q := r.client.Querier(ctx)
	b := r.conditions(filter)
	query := b.paginate(`SELECT `+couponColumns+` FROM coupons`+b.clause(), baseFilter(filter.QueryFilter), "created_at", "code", "end_date")

	var coupons []*coupon.Coupon
	if err := q.SelectContext(ctx, &coupons, q.Rebind(query), b.args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list coupons").
			Mark(postgres.ErrorKind(err))
	}
	return coupons, nil
}

func (r *couponRepository) Count(ctx context.Context, filter *types.CouponFilter) (int, error) {
	if filter == nil {
		filter = types.NewCouponFilter()
	}
	q := r.client.Querier(ctx)
	b := r.conditions(filter)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT COUNT(*) FROM coupons`+b.clause()), b.args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count coupons").
			Mark(postgres.ErrorKind(err))
	}
	return count, nil
}

func (r *couponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	r.log.Debugw("updating coupon", "coupon_id", c.ID, "active", c.Active)

	query := `UPDATE coupons SET
		description = :description,
		value = :value,
		start_date = :start_date,
		end_date = :end_date,
		max_uses = :max_uses,
		active = :active,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND status = 'published'`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update coupon").
			Mark(postgres.ErrorKind(err))
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon %s not found", c.ID).
			WithReportableDetails(map[string]any{"coupon_id": c.ID}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// Delete hard-deletes the row; assignments go with it through ON DELETE CASCADE
func (r *couponRepository) Delete(ctx context.Context, id string) error {
	r.log.Debugw("deleting coupon", "coupon_id", id)

	result, err := r.client.Querier(ctx).ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete coupon").
			Mark(postgres.ErrorKind(err))
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon %s not found", id).
			WithReportableDetails(map[string]any{"coupon_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *couponRepository) conditions(filter *types.CouponFilter) *queryBuilder {
	b := &queryBuilder{}
	b.whereStatus(baseFilter(filter.QueryFilter))
	b.whereIn("id", filter.CouponIDs)
	if filter.Code != "" {
		b.where("code = ?", strings.ToUpper(strings.TrimSpace(filter.Code)))
	}
	if filter.Active != nil {
		b.where("active = ?", *filter.Active)
	}
	return b
}
