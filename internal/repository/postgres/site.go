package postgres

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/site"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/types"
)

const siteColumns = `id, name, address, phone, status, created_at, updated_at, created_by, updated_by`

type siteRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewSiteRepository(client postgres.IClient, log *logger.Logger) site.Repository {
	return &siteRepository{client: client, log: log}
}

func (r *siteRepository) Create(ctx context.Context, s *site.Site) error {
	r.log.Debugw("creating site", "site_id", s.ID, "name", s.Name)

	query := `INSERT INTO sites (` + siteColumns + `) VALUES (
		:id, :name, :address, :phone, :status, :created_at, :updated_at, :created_by, :updated_by
	)`
	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, s); err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A site with this name already exists").
				WithReportableDetails(map[string]any{"name": s.Name}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create site").
			Mark(postgres.ErrorKind(err))
	}
	return nil
}

func (r *siteRepository) Get(ctx context.Context, id string) (*site.Site, error) {
	var s site.Site
	err := r.client.Querier(ctx).GetContext(ctx, &s,
		`SELECT `+siteColumns+` FROM sites WHERE id = $1 AND status = $2`, id, types.StatusPublished)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Site %s not found", id).
				WithReportableDetails(map[string]any{"site_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get site").
			Mark(postgres.ErrorKind(err))
	}
	return &s, nil
}

func (r *siteRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*site.Site, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	q := r.client.Querier(ctx)
	b := (&queryBuilder{}).whereStatus(filter)
	query := b.paginate(`SELECT `+siteColumns+` FROM sites`+b.clause(), filter, "created_at", "name")

	var sites []*site.Site
	if err := q.SelectContext(ctx, &sites, q.Rebind(query), b.args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list sites").
			Mark(postgres.ErrorKind(err))
	}
	return sites, nil
}
