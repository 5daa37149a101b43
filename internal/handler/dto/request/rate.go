package request

import (
	"strings"
	"time"

	"stayhub/internal/usecase/commands"
)

type SetRateOverrideRequest struct {
	Date       string `json:"date" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"required"`
	IsSpecial  bool   `json:"is_special,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (r SetRateOverrideRequest) ToParams() (commands.SetRateOverrideParams, error) {
	date, err := time.Parse(stayDateLayout, r.Date)
	if err != nil {
		return commands.SetRateOverrideParams{}, ErrInvalidDateFormat
	}
	return commands.SetRateOverrideParams{
		Date:       date,
		PriceCents: r.PriceCents,
		IsSpecial:  r.IsSpecial,
		Reason:     strings.TrimSpace(r.Reason),
	}, nil
}
