package postgres

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/user"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/types"
)

const userColumns = `id, name, email, phone, role, password_hash, status, created_at, updated_at, created_by, updated_by`

type userRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewUserRepository(client postgres.IClient, log *logger.Logger) user.Repository {
	return &userRepository{client: client, log: log}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	r.log.Debugw("creating user", "user_id", u.ID, "role", u.Role)

	query := `INSERT INTO users (` + userColumns + `) VALUES (
		:id, :name, :email, :phone, :role, :password_hash, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, u); err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A user with this email already exists").
				WithReportableDetails(map[string]any{"email": u.Email}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(postgres.ErrorKind(err))
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.client.Querier(ctx).GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND status = $2`, id, types.StatusPublished)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("User %s not found", id).
				WithReportableDetails(map[string]any{"user_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(postgres.ErrorKind(err))
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.client.Querier(ctx).GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = $1 AND status = $2`,
		user.NormalizeEmail(email), types.StatusPublished)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.WithError(err).
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(postgres.ErrorKind(err))
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}
	q := r.client.Querier(ctx)
	b := r.conditions(filter)
	query := b.paginate(`SELECT `+userColumns+` FROM users`+b.clause(), baseFilter(filter.QueryFilter), "created_at", "name", "email")

	var users []*user.User
	if err := q.SelectContext(ctx, &users, q.Rebind(query), b.args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(postgres.ErrorKind(err))
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter *types.UserFilter) (int, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}
	q := r.client.Querier(ctx)
	b := r.conditions(filter)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT COUNT(*) FROM users`+b.clause()), b.args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count users").
			Mark(postgres.ErrorKind(err))
	}
	return count, nil
}

func (r *userRepository) conditions(filter *types.UserFilter) *queryBuilder {
	b := &queryBuilder{}
	b.whereStatus(baseFilter(filter.QueryFilter))
	b.whereIn("id", filter.UserIDs)
	if filter.Role != nil {
		b.where("role = ?", string(*filter.Role))
	}
	if filter.Email != "" {
		b.where("lower(email) = ?", user.NormalizeEmail(filter.Email))
	}
	return b
}
