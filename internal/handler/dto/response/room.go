package response

import (
	"stayhub/internal/domain/room"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID         uuid.UUID `json:"id"`
	Number     string    `json:"number"`
	RoomTypeID uuid.UUID `json:"room_type_id"`
	Floor      int       `json:"floor"`
	Status     string    `json:"status"`
	IsActive   bool      `json:"is_active"`
}

func FromRoom(rm *room.Room) *RoomResponse {
	return &RoomResponse{
		ID:         rm.ID,
		Number:     rm.Number,
		RoomTypeID: rm.RoomTypeID,
		Floor:      rm.Floor,
		Status:     string(rm.Status),
		IsActive:   rm.IsActive,
	}
}
