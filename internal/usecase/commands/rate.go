package commands

import (
	"context"
	"time"

	"stayhub/internal/domain/rate"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidRatePrice = errs.New("rate price must be positive")

type SetRateOverrideParams struct {
	Date       time.Time
	PriceCents int64
	IsSpecial  bool
	Reason     string
}

type RateCommands interface {
	SetRateOverride(ctx context.Context, roomTypeID uuid.UUID, params SetRateOverrideParams) (*rate.Calendar, error)
}

type rateCommandsImpl struct {
	roomTypes RoomTypeRepository
}

func NewRateCommands(roomTypes RoomTypeRepository) RateCommands {
	return &rateCommandsImpl{roomTypes: roomTypes}
}

// SetRateOverride upserts a per-date price override. The calendar
// replaces any override on the same calendar date and stays sorted;
// the repository persists the same upsert-by-date semantics.
func (c *rateCommandsImpl) SetRateOverride(ctx context.Context, roomTypeID uuid.UUID, params SetRateOverrideParams) (*rate.Calendar, error) {
	if params.PriceCents <= 0 {
		return nil, ErrInvalidRatePrice
	}

	calendar, err := c.roomTypes.Get(ctx, roomTypeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	override := rate.Override{
		Date:       params.Date,
		PriceCents: params.PriceCents,
		IsSpecial:  params.IsSpecial,
		Reason:     params.Reason,
	}
	calendar.UpsertOverride(override)

	if err := c.roomTypes.UpsertOverride(ctx, roomTypeID, override); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return calendar, nil
}
