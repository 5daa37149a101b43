package api

import (
	"net/http"

	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/httperr"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	housekeepingCommands commands.HousekeepingCommands
}

func NewRoomHandler(housekeepingCommands commands.HousekeepingCommands) *RoomHandler {
	return &RoomHandler{
		housekeepingCommands: housekeepingCommands,
	}
}

// @Summary Complete room cleaning
// @Description Return a cleaning room to available so it can be assigned again
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rooms/{id}/cleaning/complete [post]
func (h *RoomHandler) CompleteCleaning(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}

	rm, err := h.housekeepingCommands.CompleteCleaning(c.Request.Context(), roomID)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errs.Is(err, commands.ErrRoomNotCleaning):
			httperr.AbortWithError(c, http.StatusConflict, err, "Room is not in cleaning status", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoom(rm))
}
