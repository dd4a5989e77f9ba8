package postgres

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/room"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/types"
)

const roomTypeColumns = `id, name, description, status, created_at, updated_at, created_by, updated_by`

type roomTypeRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewRoomTypeRepository(client postgres.IClient, log *logger.Logger) room.TypeRepository {
	return &roomTypeRepository{client: client, log: log}
}

func (r *roomTypeRepository) Create(ctx context.Context, t *room.RoomType) error {
	r.log.Debugw("creating room type", "room_type_id", t.ID, "name", t.Name)

	query := `INSERT INTO room_types (` + roomTypeColumns + `) VALUES (
		:id, :name, :description, :status, :created_at, :updated_at, :created_by, :updated_by
	)`
	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, t); err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A room type with this name already exists").
				WithReportableDetails(map[string]any{"name": t.Name}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create room type").
			Mark(postgres.ErrorKind(err))
	}
	return nil
}

func (r *roomTypeRepository) Get(ctx context.Context, id string) (*room.RoomType, error) {
	var t room.RoomType
	err := r.client.Querier(ctx).GetContext(ctx, &t,
		`SELECT `+roomTypeColumns+` FROM room_types WHERE id = $1 AND status = $2`, id, types.StatusPublished)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Room type %s not found", id).
				WithReportableDetails(map[string]any{"room_type_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get room type").
			Mark(postgres.ErrorKind(err))
	}
	return &t, nil
}

func (r *roomTypeRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*room.RoomType, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	q := r.client.Querier(ctx)
	b := (&queryBuilder{}).whereStatus(filter)
	query := b.paginate(`SELECT `+roomTypeColumns+` FROM room_types`+b.clause(), filter, "created_at", "name")

	var roomTypes []*room.RoomType
	if err := q.SelectContext(ctx, &roomTypes, q.Rebind(query), b.args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list room types").
			Mark(postgres.ErrorKind(err))
	}
	return roomTypes, nil
}
