package commands

import (
	"context"
	"fmt"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/room"
	"stayhub/internal/domain/rule"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrRoomTypeNotFound        = errs.New("room type not found")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrNoRoomAvailable         = errs.New("no available rooms of the requested type")
	ErrInvalidStayRange        = errs.New("invalid stay range")
	ErrInvalidTransition       = errs.New("invalid status transition")
	ErrNegativePayment         = errs.New("payment amount cannot be negative")
	ErrNumberAllocExhausted    = errs.New("reservation number allocation retries exhausted")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Reservation number collisions between concurrent writers are
// resolved by re-deriving from the store and retrying.
const maxNumberAttempts = 3

// RuleViolationError rejects a stay wholesale with the full list of
// breached booking rules.
type RuleViolationError struct {
	Violations []rule.Violation
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("booking rule violations: %d rule(s) failed", len(e.Violations))
}

// NoAvailabilityError rejects a stay with the availability snapshot
// that failed it.
type NoAvailabilityError struct {
	Snapshot queries.AvailabilitySnapshot
}

func (e *NoAvailabilityError) Error() string {
	return fmt.Sprintf("no rooms available: %d of %d booked", e.Snapshot.BookedCount, e.Snapshot.RoomCount)
}

type CreateReservationParams struct {
	RoomTypeID uuid.UUID
	Guest      reservation.Guest
	CheckIn    time.Time
	CheckOut   time.Time
	Source     reservation.Source
	Notes      string
}

type AddPaymentParams struct {
	AmountCents   int64
	Method        string
	TransactionID string
}

type ReservationCommands interface {
	Create(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next reservation.Status) (*reservation.Reservation, error)
	AddPayment(ctx context.Context, id uuid.UUID, params AddPaymentParams) (*reservation.Reservation, error)
}

type reservationCommandsImpl struct {
	reservations ReservationRepository
	rooms        RoomRepository
	roomTypes    RoomTypeRepository
	rules        RuleRepository
	evaluator    *rule.Evaluator
	clock        clock.Clock
}

func NewReservationCommands(
	reservations ReservationRepository,
	rooms RoomRepository,
	roomTypes RoomTypeRepository,
	rules RuleRepository,
	evaluator *rule.Evaluator,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservations: reservations,
		rooms:        rooms,
		roomTypes:    roomTypes,
		rules:        rules,
		evaluator:    evaluator,
		clock:        clock,
	}
}

// Create validates, prices and persists a new reservation. Every step
// before the final insert is read-only, so reject paths leave no
// partial writes.
func (c *reservationCommandsImpl) Create(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error) {
	now := c.clock.Now()

	stay, err := reservation.NewStayRange(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayRange)
	}

	calendar, err := c.roomTypes.Get(ctx, params.RoomTypeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	applicable, err := c.rules.FindApplicable(ctx, params.RoomTypeID, stay)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if violations := c.evaluator.Violations(applicable, params.RoomTypeID, stay, now); len(violations) > 0 {
		return nil, &RuleViolationError{Violations: violations}
	}

	snapshot, err := c.availability(ctx, params.RoomTypeID, stay, nil)
	if err != nil {
		return nil, err
	}
	if !snapshot.IsAvailable {
		return nil, &NoAvailabilityError{Snapshot: snapshot}
	}

	total := reservation.NewMoney(calendar.TotalFor(stay))

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		prefix := reservation.NumberPrefix(now)
		latest, err := c.reservations.MaxNumberWithPrefix(ctx, prefix)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		number := reservation.NextNumber(prefix, latest)

		// Optimistic re-check closes the window between the first
		// availability read and the insert; a concurrent writer that
		// took the last unit fails the request here.
		recheck, err := c.availability(ctx, params.RoomTypeID, stay, nil)
		if err != nil {
			return nil, err
		}
		if !recheck.IsAvailable {
			return nil, &NoAvailabilityError{Snapshot: recheck}
		}

		entity := reservation.NewReservation(number, params.RoomTypeID, params.Guest, stay, total, params.Source, params.Notes, now)
		if err := c.reservations.Insert(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				continue
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return entity, nil
	}

	return nil, ErrNumberAllocExhausted
}

// UpdateStatus drives the lifecycle state machine and its room-state
// side effects: check-in assigns an available room and occupies it,
// check-out sends the assigned room to cleaning.
func (c *reservationCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, next reservation.Status) (*reservation.Reservation, error) {
	now := c.clock.Now()

	res, err := c.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	var assignedRoom *room.Room
	if next == reservation.StatusCheckedIn && res.RoomID() == nil {
		assignedRoom, err = c.rooms.FindAvailable(ctx, res.RoomTypeID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrNoRoomAvailable
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	if err := res.TransitionTo(next, now); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}
	if assignedRoom != nil {
		if err := res.AssignRoom(assignedRoom.ID, now); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	if err := c.reservations.Update(ctx, res); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	switch {
	case next == reservation.StatusCheckedIn && assignedRoom != nil:
		if err := c.rooms.SetStatus(ctx, assignedRoom.ID, room.StatusOccupied); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	case next == reservation.StatusCheckedOut && res.RoomID() != nil:
		// Housekeeping returns the room to available later.
		if err := c.rooms.SetStatus(ctx, *res.RoomID(), room.StatusCleaning); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return res, nil
}

func (c *reservationCommandsImpl) AddPayment(ctx context.Context, id uuid.UUID, params AddPaymentParams) (*reservation.Reservation, error) {
	now := c.clock.Now()

	res, err := c.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	payment := reservation.Payment{
		Amount:        reservation.NewMoney(params.AmountCents),
		Method:        params.Method,
		TransactionID: params.TransactionID,
		PaidAt:        now,
	}
	if err := res.AddPayment(payment, now); err != nil {
		return nil, errs.Mark(err, ErrNegativePayment)
	}

	if err := c.reservations.AddPayment(ctx, res.ID(), payment, res.PaymentStatus()); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (c *reservationCommandsImpl) findReservation(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := c.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (c *reservationCommandsImpl) availability(ctx context.Context, roomTypeID uuid.UUID, stay reservation.StayRange, excludeID *uuid.UUID) (queries.AvailabilitySnapshot, error) {
	roomCount, err := c.rooms.CountActive(ctx, roomTypeID)
	if err != nil {
		return queries.AvailabilitySnapshot{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	booked, err := c.reservations.CountConflicting(ctx, roomTypeID, stay, excludeID)
	if err != nil {
		return queries.AvailabilitySnapshot{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return queries.NewAvailabilitySnapshot(roomCount, booked), nil
}
