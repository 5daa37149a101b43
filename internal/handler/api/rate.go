package api

import (
	"net/http"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RateHandler struct {
	rateCommands commands.RateCommands
}

func NewRateHandler(rateCommands commands.RateCommands) *RateHandler {
	return &RateHandler{
		rateCommands: rateCommands,
	}
}

// @Summary Set rate override
// @Description Set or replace the price override for one date of a room type
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room type ID"
// @Param request body reqdto.SetRateOverrideRequest true "Rate override"
// @Success 200 {object} resdto.RateCalendarResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /room-types/{id}/rates [put]
func (h *RateHandler) SetRateOverride(c *gin.Context) {
	roomTypeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room type ID format",
		})
		return
	}

	var req reqdto.SetRateOverrideRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params, err := req.ToParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	calendar, err := h.rateCommands.SetRateOverride(c.Request.Context(), roomTypeID, params)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidRatePrice):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Rate price must be positive",
			})
		case errs.Is(err, commands.ErrRoomTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room type not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRateCalendar(calendar))
}
