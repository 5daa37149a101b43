package repository

import (
	"context"

	"stayhub/internal/domain/rate"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomTypeRepository struct {
	pool *pgxpool.Pool
}

func NewRoomTypeRepository(pool *pgxpool.Pool) *RoomTypeRepository {
	return &RoomTypeRepository{pool: pool}
}

// Get loads the room type with its full rate calendar. Overrides come
// back date-ordered so the aggregate invariant holds on load.
func (r *RoomTypeRepository) Get(ctx context.Context, id uuid.UUID) (*rate.Calendar, error) {
	var (
		name          string
		baseRateCents int64
	)
	err := r.pool.QueryRow(ctx, `
		SELECT name, base_rate_cents FROM room_types WHERE id=$1
	`, id).Scan(&name, &baseRateCents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room type", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT rate_date, price_cents, is_special, reason
		FROM room_type_rates WHERE room_type_id=$1
		ORDER BY rate_date
	`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load rate overrides", err)
	}
	defer rows.Close()

	var overrides []rate.Override
	for rows.Next() {
		var (
			date pgtype.Date
			o    rate.Override
		)
		if err := rows.Scan(&date, &o.PriceCents, &o.IsSpecial, &o.Reason); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rate override", err)
		}
		o.Date = date.Time
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rate overrides", err)
	}

	calendar, err := rate.NewCalendar(id, name, baseRateCents, overrides)
	if err != nil {
		return nil, infra.WrapRepoErr("stored room type has invalid base rate", err)
	}
	return calendar, nil
}

// UpsertOverride replaces any override for the same calendar date.
func (r *RoomTypeRepository) UpsertOverride(ctx context.Context, roomTypeID uuid.UUID, o rate.Override) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO room_type_rates (room_type_id, rate_date, price_cents, is_special, reason)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (room_type_id, rate_date)
		DO UPDATE SET price_cents=EXCLUDED.price_cents, is_special=EXCLUDED.is_special, reason=EXCLUDED.reason
	`, roomTypeID, pgtype.Date{Time: o.Date, Valid: true}, o.PriceCents, o.IsSpecial, o.Reason)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert rate override", err)
	}
	return nil
}
