//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"stayhub/internal/domain/rate"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/room"
	"stayhub/internal/domain/rule"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeReservationRepo struct {
	byID        map[uuid.UUID]*reservation.Reservation
	conflicts   int
	conflictSeq []int
	maxNumbers  []string
	maxCalls    int
	insertErrs  []error
	inserted    []*reservation.Reservation
	updated     []*reservation.Reservation
	paymentLogs []reservation.PaymentStatus
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
	}
	return res, nil
}

func (f *fakeReservationRepo) CountConflicting(_ context.Context, _ uuid.UUID, _ reservation.StayRange, _ *uuid.UUID) (int, error) {
	if len(f.conflictSeq) > 0 {
		n := f.conflictSeq[0]
		f.conflictSeq = f.conflictSeq[1:]
		return n, nil
	}
	return f.conflicts, nil
}

func (f *fakeReservationRepo) MaxNumberWithPrefix(_ context.Context, _ string) (string, error) {
	if f.maxCalls < len(f.maxNumbers) {
		n := f.maxNumbers[f.maxCalls]
		f.maxCalls++
		return n, nil
	}
	f.maxCalls++
	return "", nil
}

func (f *fakeReservationRepo) Insert(_ context.Context, res *reservation.Reservation) error {
	var err error
	if len(f.insertErrs) > 0 {
		err = f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
	}
	if err != nil {
		return err
	}
	f.inserted = append(f.inserted, res)
	return nil
}

func (f *fakeReservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	f.updated = append(f.updated, res)
	return nil
}

func (f *fakeReservationRepo) AddPayment(_ context.Context, _ uuid.UUID, _ reservation.Payment, status reservation.PaymentStatus) error {
	f.paymentLogs = append(f.paymentLogs, status)
	return nil
}

type fakeRoomRepo struct {
	rooms       map[uuid.UUID]*room.Room
	activeCount int
	available   *room.Room
	statusLog   map[uuid.UUID]room.Status
}

func (f *fakeRoomRepo) Get(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := f.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", errors.New("no rows"), infra.KindNotFound)
	}
	return rm, nil
}

func (f *fakeRoomRepo) CountActive(_ context.Context, _ uuid.UUID) (int, error) {
	return f.activeCount, nil
}

func (f *fakeRoomRepo) FindAvailable(_ context.Context, _ uuid.UUID) (*room.Room, error) {
	if f.available == nil {
		return nil, infra.WrapRepoErr("no available room", errors.New("no rows"), infra.KindNotFound)
	}
	return f.available, nil
}

func (f *fakeRoomRepo) SetStatus(_ context.Context, roomID uuid.UUID, status room.Status) error {
	if f.statusLog == nil {
		f.statusLog = map[uuid.UUID]room.Status{}
	}
	f.statusLog[roomID] = status
	return nil
}

type fakeRoomTypeRepo struct {
	calendar *rate.Calendar
}

func (f *fakeRoomTypeRepo) Get(_ context.Context, _ uuid.UUID) (*rate.Calendar, error) {
	if f.calendar == nil {
		return nil, infra.WrapRepoErr("room type not found", errors.New("no rows"), infra.KindNotFound)
	}
	return f.calendar, nil
}

func (f *fakeRoomTypeRepo) UpsertOverride(_ context.Context, _ uuid.UUID, _ rate.Override) error {
	return nil
}

type fakeRuleRepo struct {
	rules    []rule.Rule
	inserted []rule.Rule
}

func (f *fakeRuleRepo) FindApplicable(_ context.Context, _ uuid.UUID, _ reservation.StayRange) ([]rule.Rule, error) {
	return f.rules, nil
}

func (f *fakeRuleRepo) Insert(_ context.Context, r rule.Rule) error {
	f.inserted = append(f.inserted, r)
	return nil
}

type fixture struct {
	reservations *fakeReservationRepo
	rooms        *fakeRoomRepo
	roomTypes    *fakeRoomTypeRepo
	rules        *fakeRuleRepo
	clock        *clock.MockClock
	commands     commands.ReservationCommands
	roomTypeID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	roomTypeID := uuid.New()
	calendar, err := rate.NewCalendar(roomTypeID, "Standard", 10000, nil)
	require.NoError(t, err)

	f := &fixture{
		reservations: &fakeReservationRepo{byID: map[uuid.UUID]*reservation.Reservation{}},
		rooms:        &fakeRoomRepo{activeCount: 5},
		roomTypes:    &fakeRoomTypeRepo{calendar: calendar},
		rules:        &fakeRuleRepo{},
		clock:        clock.NewMockClock(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)),
		roomTypeID:   roomTypeID,
	}
	evaluator := rule.NewEvaluator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.commands = commands.NewReservationCommands(f.reservations, f.rooms, f.roomTypes, f.rules, evaluator, f.clock)
	return f
}

func (f *fixture) createParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		RoomTypeID: f.roomTypeID,
		Guest:      reservation.Guest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		CheckIn:    date(2024, 6, 20),
		CheckOut:   date(2024, 6, 23),
		Source:     reservation.SourceDirect,
	}
}

func dupKeyErr() error {
	return infra.WrapRepoErr("duplicate number", errors.New("unique violation"), infra.KindDuplicateKey)
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path confirms, numbers and prices the stay", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.commands.Create(ctx, f.createParams())
		require.NoError(t, err)

		assert.Equal(t, "R240615-0001", res.Number())
		assert.Equal(t, reservation.StatusConfirmed, res.Status())
		assert.Equal(t, int64(30000), res.TotalAmount().Cents())
		require.Len(t, f.reservations.inserted, 1)
		assert.Same(t, res, f.reservations.inserted[0])
	})

	t.Run("invalid stay range", func(t *testing.T) {
		f := newFixture(t)
		params := f.createParams()
		params.CheckOut = params.CheckIn

		_, err := f.commands.Create(ctx, params)
		assert.True(t, errs.Is(err, commands.ErrInvalidStayRange))
		assert.Empty(t, f.reservations.inserted)
	})

	t.Run("unknown room type", func(t *testing.T) {
		f := newFixture(t)
		f.roomTypes.calendar = nil

		_, err := f.commands.Create(ctx, f.createParams())
		assert.ErrorIs(t, err, commands.ErrRoomTypeNotFound)
	})

	t.Run("rule violations reject without writing", func(t *testing.T) {
		f := newFixture(t)
		minStay, err := rule.New("min 5 nights", rule.MinStay{Nights: 5}, nil, nil, nil, 0)
		require.NoError(t, err)
		f.rules.rules = []rule.Rule{minStay}

		_, err = f.commands.Create(ctx, f.createParams())

		var ruleErr *commands.RuleViolationError
		require.ErrorAs(t, err, &ruleErr)
		require.Len(t, ruleErr.Violations, 1)
		assert.Equal(t, "min 5 nights", ruleErr.Violations[0].RuleName)
		assert.Empty(t, f.reservations.inserted)
	})

	t.Run("last room still books", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.activeCount = 5
		f.reservations.conflicts = 4

		_, err := f.commands.Create(ctx, f.createParams())
		assert.NoError(t, err)
	})

	t.Run("fully booked rejects with the snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.activeCount = 5
		f.reservations.conflicts = 5

		_, err := f.commands.Create(ctx, f.createParams())

		var availErr *commands.NoAvailabilityError
		require.ErrorAs(t, err, &availErr)
		assert.Equal(t, 5, availErr.Snapshot.BookedCount)
		assert.Equal(t, 0, availErr.Snapshot.AvailableCount)
		assert.Empty(t, f.reservations.inserted)
	})

	t.Run("concurrent writer takes the last room before the insert", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.activeCount = 5
		// First check sees a free room, the re-check before insert does not.
		f.reservations.conflictSeq = []int{4, 5}

		_, err := f.commands.Create(ctx, f.createParams())

		var availErr *commands.NoAvailabilityError
		require.ErrorAs(t, err, &availErr)
		assert.Equal(t, 5, availErr.Snapshot.BookedCount)
		assert.Equal(t, 0, availErr.Snapshot.AvailableCount)
		assert.Empty(t, f.reservations.inserted)
	})

	t.Run("retries once on a number collision", func(t *testing.T) {
		f := newFixture(t)
		f.reservations.maxNumbers = []string{"", "R240615-0001"}
		f.reservations.insertErrs = []error{dupKeyErr()}

		res, err := f.commands.Create(ctx, f.createParams())
		require.NoError(t, err)
		assert.Equal(t, "R240615-0002", res.Number())
		require.Len(t, f.reservations.inserted, 1)
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		f := newFixture(t)
		f.reservations.insertErrs = []error{dupKeyErr(), dupKeyErr(), dupKeyErr()}

		_, err := f.commands.Create(ctx, f.createParams())
		assert.ErrorIs(t, err, commands.ErrNumberAllocExhausted)
		assert.Empty(t, f.reservations.inserted)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	seed := func(f *fixture) *reservation.Reservation {
		res, err := f.commands.Create(ctx, f.createParams())
		require.NoError(t, err)
		f.reservations.byID[res.ID()] = res
		return res
	}

	t.Run("check-in assigns an available room and occupies it", func(t *testing.T) {
		f := newFixture(t)
		res := seed(f)
		assigned := &room.Room{ID: uuid.New(), Number: "101", RoomTypeID: f.roomTypeID, Status: room.StatusAvailable, IsActive: true}
		f.rooms.available = assigned

		updated, err := f.commands.UpdateStatus(ctx, res.ID(), reservation.StatusCheckedIn)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusCheckedIn, updated.Status())
		require.NotNil(t, updated.RoomID())
		assert.Equal(t, assigned.ID, *updated.RoomID())
		assert.Equal(t, room.StatusOccupied, f.rooms.statusLog[assigned.ID])
	})

	t.Run("check-in fails when no room is free", func(t *testing.T) {
		f := newFixture(t)
		res := seed(f)
		f.rooms.available = nil

		_, err := f.commands.UpdateStatus(ctx, res.ID(), reservation.StatusCheckedIn)
		assert.ErrorIs(t, err, commands.ErrNoRoomAvailable)
		assert.Equal(t, reservation.StatusConfirmed, res.Status(), "reservation must stay untouched")
	})

	t.Run("check-out sends the room to cleaning", func(t *testing.T) {
		f := newFixture(t)
		res := seed(f)
		assigned := &room.Room{ID: uuid.New(), Number: "101", RoomTypeID: f.roomTypeID, Status: room.StatusAvailable, IsActive: true}
		f.rooms.available = assigned

		_, err := f.commands.UpdateStatus(ctx, res.ID(), reservation.StatusCheckedIn)
		require.NoError(t, err)

		updated, err := f.commands.UpdateStatus(ctx, res.ID(), reservation.StatusCheckedOut)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCheckedOut, updated.Status())
		assert.Equal(t, room.StatusCleaning, f.rooms.statusLog[assigned.ID])
	})

	t.Run("invalid transition is rejected", func(t *testing.T) {
		f := newFixture(t)
		res := seed(f)

		_, err := f.commands.UpdateStatus(ctx, res.ID(), reservation.StatusCheckedOut)
		assert.True(t, errs.Is(err, commands.ErrInvalidTransition))
		assert.Empty(t, f.reservations.updated)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.UpdateStatus(ctx, uuid.New(), reservation.StatusCancelled)
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})
}

func TestAddPayment(t *testing.T) {
	ctx := context.Background()

	seed := func(f *fixture) *reservation.Reservation {
		res, err := f.commands.Create(ctx, f.createParams())
		require.NoError(t, err)
		f.reservations.byID[res.ID()] = res
		return res
	}

	t.Run("partial payment persists the recomputed status", func(t *testing.T) {
		f := newFixture(t)
		res := seed(f)

		updated, err := f.commands.AddPayment(ctx, res.ID(), commands.AddPaymentParams{AmountCents: 10000, Method: "card"})
		require.NoError(t, err)

		assert.Equal(t, reservation.PaymentPartiallyPaid, updated.PaymentStatus())
		require.Len(t, f.reservations.paymentLogs, 1)
		assert.Equal(t, reservation.PaymentPartiallyPaid, f.reservations.paymentLogs[0])
	})

	t.Run("full payment flips to paid", func(t *testing.T) {
		f := newFixture(t)
		res := seed(f)

		updated, err := f.commands.AddPayment(ctx, res.ID(), commands.AddPaymentParams{AmountCents: 30000, Method: "card"})
		require.NoError(t, err)
		assert.Equal(t, reservation.PaymentPaid, updated.PaymentStatus())
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		f := newFixture(t)
		res := seed(f)

		_, err := f.commands.AddPayment(ctx, res.ID(), commands.AddPaymentParams{AmountCents: -1, Method: "card"})
		assert.True(t, errs.Is(err, commands.ErrNegativePayment))
		assert.Empty(t, f.reservations.paymentLogs)
	})
}
