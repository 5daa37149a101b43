package queries

import (
	"context"
	"time"

	"stayhub/internal/domain/rate"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/rule"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRoomTypeNotFound = errs.New("room type not found")
	ErrInvalidStayRange = errs.New("invalid stay range")
)

// Read-side ports. The infra repositories implement both these and the
// command-layer ports.

type RoomCountReader interface {
	CountActive(ctx context.Context, roomTypeID uuid.UUID) (int, error)
}

type ConflictReader interface {
	CountConflicting(ctx context.Context, roomTypeID uuid.UUID, stay reservation.StayRange, excludeID *uuid.UUID) (int, error)
}

type CalendarReader interface {
	Get(ctx context.Context, id uuid.UUID) (*rate.Calendar, error)
}

type RuleReader interface {
	FindApplicable(ctx context.Context, roomTypeID uuid.UUID, stay reservation.StayRange) ([]rule.Rule, error)
}

type AvailabilityQueries interface {
	// Quote reports, in one pass, whether a stay is bookable: the
	// capacity snapshot, every violated rule, and the priced total.
	Quote(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time) (*StayQuote, error)
}

type availabilityQueriesImpl struct {
	rooms        RoomCountReader
	reservations ConflictReader
	roomTypes    CalendarReader
	rules        RuleReader
	evaluator    *rule.Evaluator
	clock        clock.Clock
}

func NewAvailabilityQueries(
	rooms RoomCountReader,
	reservations ConflictReader,
	roomTypes CalendarReader,
	rules RuleReader,
	evaluator *rule.Evaluator,
	clock clock.Clock,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		rooms:        rooms,
		reservations: reservations,
		roomTypes:    roomTypes,
		rules:        rules,
		evaluator:    evaluator,
		clock:        clock,
	}
}

func (q *availabilityQueriesImpl) Quote(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time) (*StayQuote, error) {
	now := q.clock.Now()

	stay, err := reservation.NewStayRange(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayRange)
	}

	calendar, err := q.roomTypes.Get(ctx, roomTypeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	applicable, err := q.rules.FindApplicable(ctx, roomTypeID, stay)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	violations := q.evaluator.Violations(applicable, roomTypeID, stay, now)

	roomCount, err := q.rooms.CountActive(ctx, roomTypeID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	booked, err := q.reservations.CountConflicting(ctx, roomTypeID, stay, nil)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	snapshot := NewAvailabilitySnapshot(roomCount, booked)

	return &StayQuote{
		IsAvailable:      snapshot.IsAvailable && len(violations) == 0,
		Availability:     snapshot,
		Violations:       violations,
		Nights:           stay.Nights(),
		TotalAmountCents: calendar.TotalFor(stay),
	}, nil
}
