package repository

import (
	"context"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

func (r *RoomRepository) Get(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, room_number, room_type_id, floor, status, is_active
		FROM rooms WHERE id=$1
	`, id)
	return scanRoom(row)
}

func (r *RoomRepository) CountActive(ctx context.Context, roomTypeID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM rooms WHERE room_type_id=$1 AND is_active
	`, roomTypeID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active rooms", err)
	}
	return count, nil
}

// FindAvailable picks any active available room of the type; which one
// is unspecified.
func (r *RoomRepository) FindAvailable(ctx context.Context, roomTypeID uuid.UUID) (*room.Room, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, room_number, room_type_id, floor, status, is_active
		FROM rooms
		WHERE room_type_id=$1 AND status='available' AND is_active
		LIMIT 1
	`, roomTypeID)
	return scanRoom(row)
}

func (r *RoomRepository) SetStatus(ctx context.Context, roomID uuid.UUID, status room.Status) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE rooms SET status=$2 WHERE id=$1
	`, roomID, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to set room status", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*room.Room, error) {
	var rm room.Room
	var status string
	err := row.Scan(&rm.ID, &rm.Number, &rm.RoomTypeID, &rm.Floor, &status, &rm.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan room", err)
	}
	rm.Status = room.Status(status)
	return &rm, nil
}
