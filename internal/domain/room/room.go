package room

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotCleaning = errors.New("room is not in cleaning status")

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
	StatusCleaning    Status = "cleaning"
)

func (s Status) String() string {
	return string(s)
}

type Room struct {
	ID         uuid.UUID
	Number     string
	RoomTypeID uuid.UUID
	Floor      int
	Status     Status
	IsActive   bool
}

// CompleteCleaning returns a cleaning room to service. Housekeeping is
// the only path from cleaning back to available.
func (r *Room) CompleteCleaning() error {
	if r.Status != StatusCleaning {
		return ErrNotCleaning
	}
	r.Status = StatusAvailable
	return nil
}
