package response

import (
	"stayhub/internal/domain/rate"

	"github.com/google/uuid"
)

type RateOverrideResponse struct {
	Date       string `json:"date"`
	PriceCents int64  `json:"price_cents"`
	IsSpecial  bool   `json:"is_special"`
	Reason     string `json:"reason,omitempty"`
}

type RateCalendarResponse struct {
	RoomTypeID    uuid.UUID              `json:"room_type_id"`
	Name          string                 `json:"name"`
	BaseRateCents int64                  `json:"base_rate_cents"`
	Overrides     []RateOverrideResponse `json:"overrides"`
}

func FromRateCalendar(c *rate.Calendar) *RateCalendarResponse {
	overrides := make([]RateOverrideResponse, len(c.Overrides()))
	for i, o := range c.Overrides() {
		overrides[i] = RateOverrideResponse{
			Date:       o.Date.Format("2006-01-02"),
			PriceCents: o.PriceCents,
			IsSpecial:  o.IsSpecial,
			Reason:     o.Reason,
		}
	}
	return &RateCalendarResponse{
		RoomTypeID:    c.RoomTypeID(),
		Name:          c.Name(),
		BaseRateCents: c.BaseRateCents(),
		Overrides:     overrides,
	}
}
