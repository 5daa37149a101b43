package commands

import (
	"context"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound    = errs.New("room not found")
	ErrRoomNotCleaning = errs.New("room is not in cleaning status")
)

type HousekeepingCommands interface {
	CompleteCleaning(ctx context.Context, roomID uuid.UUID) (*room.Room, error)
}

type housekeepingCommandsImpl struct {
	rooms RoomRepository
}

func NewHousekeepingCommands(rooms RoomRepository) HousekeepingCommands {
	return &housekeepingCommandsImpl{rooms: rooms}
}

// CompleteCleaning returns a checked-out room to service. Check-out
// only marks the room cleaning; this is the step that makes it
// bookable again.
func (c *housekeepingCommandsImpl) CompleteCleaning(ctx context.Context, roomID uuid.UUID) (*room.Room, error) {
	rm, err := c.rooms.Get(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := rm.CompleteCleaning(); err != nil {
		return nil, errs.Mark(err, ErrRoomNotCleaning)
	}

	if err := c.rooms.SetStatus(ctx, rm.ID, room.StatusAvailable); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rm, nil
}
