package postgres

import (
	"context"

	"github.com/hotelhub/hotelhub/internal/domain/room"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/postgres"
	"github.com/hotelhub/hotelhub/internal/types"
)

const roomColumns = `id, number, site_id, room_type_id, nightly_price, availability, status, created_at, updated_at, created_by, updated_by`

type roomRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewRoomRepository(client postgres.IClient, log *logger.Logger) room.Repository {
	return &roomRepository{client: client, log: log}
}

func (r *roomRepository) Create(ctx context.Context, rm *room.Room) error {
	r.log.Debugw("creating room", "room_id", rm.ID, "number", rm.Number, "site_id", rm.SiteID)

	query := `INSERT INTO rooms (` + roomColumns + `) VALUES (
		:id, :number, :site_id, :room_type_id, :nightly_price, :availability, :status, :created_at, :updated_at, :created_by, :updated_by
	)`
	if _, err := r.client.Querier(ctx).NamedExecContext(ctx, query, rm); err != nil {
		return r.writeError(err, rm, "Failed to create room")
	}
	return nil
}

func (r *roomRepository) Get(ctx context.Context, id string) (*room.Room, error) {
	var rm room.Room
	err := r.client.Querier(ctx).GetContext(ctx, &rm,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1 AND status = $2`, id, types.StatusPublished)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Room %s not found", id).
				WithReportableDetails(map[string]any{"room_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get room").
			Mark(postgres.ErrorKind(err))
	}
	return &rm, nil
}

func (r *roomRepository) List(ctx context.Context, filter *types.RoomFilter) ([]*room.Room, error) {
	if filter == nil {
		filter = types.NewRoomFilter()
	}
	q := r.client.Querier(ctx)
	b := r.conditions(filter)
	query := b.paginate(`SELECT `+roomColumns+` FROM rooms`+b.clause(), baseFilter(filter.QueryFilter), "created_at", "number", "nightly_price")

	var rooms []*room.Room
	if err := q.SelectContext(ctx, &rooms, q.Rebind(query), b.args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list rooms").
			Mark(postgres.ErrorKind(err))
	}
	return rooms, nil
}

func (r *roomRepository) Count(ctx context.Context, filter *types.RoomFilter) (int, error) {
	if filter == nil {
		filter = types.NewRoomFilter()
	}
	q := r.client.Querier(ctx)
	b := r.conditions(filter)

	var count int
	if err := q.GetContext(ctx, &count, q.Rebind(`SELECT COUNT(*) FROM rooms`+b.clause()), b.args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count rooms").
			Mark(postgres.ErrorKind(err))
	}
	return count, nil
}

func (r *roomRepository) Update(ctx context.Context, rm *room.Room) error {
	r.log.Debugw("updating room", "room_id", rm.ID)

	query := `UPDATE rooms SET
		number = :number,
		site_id = :site_id,
		room_type_id = :room_type_id,
		nightly_price = :nightly_price,
		availability = :availability,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND status = 'published'`

	result, err := r.client.Querier(ctx).NamedExecContext(ctx, query, rm)
	if err != nil {
		return r.writeError(err, rm, "Failed to update room")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ierr.NewError("room not found").
			WithHintf("Room %s not found", rm.ID).
			WithReportableDetails(map[string]any{"room_id": rm.ID}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *roomRepository) conditions(filter *types.RoomFilter) *queryBuilder {
	b := &queryBuilder{}
	b.whereStatus(baseFilter(filter.QueryFilter))
	b.whereIn("id", filter.RoomIDs)
	if filter.SiteID != "" {
		b.where("site_id = ?", filter.SiteID)
	}
	if filter.RoomTypeID != "" {
		b.where("room_type_id = ?", filter.RoomTypeID)
	}
	if filter.Availability != nil {
		b.where("availability = ?", string(*filter.Availability))
	}
	return b
}

func (r *roomRepository) writeError(err error, rm *room.Room, hint string) error {
	switch {
	case postgres.IsUniqueViolation(err):
		return ierr.WithError(err).
			WithHint("A room with this number already exists").
			WithReportableDetails(map[string]any{"number": rm.Number}).
			Mark(ierr.ErrAlreadyExists)
	case postgres.IsForeignKeyViolation(err):
		return ierr.WithError(err).
			WithHint("Site or room type does not exist").
			WithReportableDetails(map[string]any{
				"site_id":      rm.SiteID,
				"room_type_id": rm.RoomTypeID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return ierr.WithError(err).
		WithHint(hint).
		Mark(postgres.ErrorKind(err))
}
