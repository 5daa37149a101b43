package commands

import (
	"context"

	"stayhub/internal/domain/rate"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/room"
	"stayhub/internal/domain/rule"

	"github.com/google/uuid"
)

// Repository ports owned by the command layer. Implementations live in
// internal/infra/repository and report failures as RepositoryError
// kinds.

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// CountConflicting counts reservations of the room type whose stay
	// overlaps the given range under half-open interval overlap and
	// whose status is not cancelled or no-show. excludeID skips the
	// reservation being updated.
	CountConflicting(ctx context.Context, roomTypeID uuid.UUID, stay reservation.StayRange, excludeID *uuid.UUID) (int, error)
	// MaxNumberWithPrefix returns the lexicographically greatest
	// reservation number sharing the prefix, or "" when none exists.
	MaxNumberWithPrefix(ctx context.Context, prefix string) (string, error)
	// Insert fails with KindDuplicateKey when the reservation number
	// is already taken.
	Insert(ctx context.Context, res *reservation.Reservation) error
	Update(ctx context.Context, res *reservation.Reservation) error
	AddPayment(ctx context.Context, reservationID uuid.UUID, p reservation.Payment, status reservation.PaymentStatus) error
}

type RoomRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*room.Room, error)
	CountActive(ctx context.Context, roomTypeID uuid.UUID) (int, error)
	// FindAvailable returns any active room of the type currently in
	// available status, failing with KindNotFound when there is none.
	FindAvailable(ctx context.Context, roomTypeID uuid.UUID) (*room.Room, error)
	SetStatus(ctx context.Context, roomID uuid.UUID, status room.Status) error
}

type RoomTypeRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*rate.Calendar, error)
	// UpsertOverride persists a single per-date rate override,
	// replacing any existing override for that calendar date.
	UpsertOverride(ctx context.Context, roomTypeID uuid.UUID, o rate.Override) error
}

type RuleRepository interface {
	// FindApplicable loads active rules that either name the room type
	// or apply to all, and whose validity window (if any) intersects
	// the stay, ordered by priority descending.
	FindApplicable(ctx context.Context, roomTypeID uuid.UUID, stay reservation.StayRange) ([]rule.Rule, error)
	Insert(ctx context.Context, r rule.Rule) error
}
