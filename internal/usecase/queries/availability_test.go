//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"stayhub/internal/domain/rate"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/rule"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type stubRoomCounter struct{ count int }

func (s stubRoomCounter) CountActive(context.Context, uuid.UUID) (int, error) {
	return s.count, nil
}

type stubConflictReader struct{ conflicts int }

func (s stubConflictReader) CountConflicting(context.Context, uuid.UUID, reservation.StayRange, *uuid.UUID) (int, error) {
	return s.conflicts, nil
}

type stubCalendarReader struct{ calendar *rate.Calendar }

func (s stubCalendarReader) Get(context.Context, uuid.UUID) (*rate.Calendar, error) {
	if s.calendar == nil {
		return nil, infra.WrapRepoErr("room type not found", errors.New("no rows"), infra.KindNotFound)
	}
	return s.calendar, nil
}

type stubRuleReader struct{ rules []rule.Rule }

func (s stubRuleReader) FindApplicable(context.Context, uuid.UUID, reservation.StayRange) ([]rule.Rule, error) {
	return s.rules, nil
}

func newQuoteService(t *testing.T, roomCount, conflicts int, rules []rule.Rule) (queries.AvailabilityQueries, uuid.UUID) {
	t.Helper()

	roomTypeID := uuid.New()
	calendar, err := rate.NewCalendar(roomTypeID, "Standard", 10000, []rate.Override{
		{Date: date(2024, 6, 21), PriceCents: 15000},
	})
	require.NoError(t, err)

	evaluator := rule.NewEvaluator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	q := queries.NewAvailabilityQueries(
		stubRoomCounter{count: roomCount},
		stubConflictReader{conflicts: conflicts},
		stubCalendarReader{calendar: calendar},
		stubRuleReader{rules: rules},
		evaluator,
		clock.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
	)
	return q, roomTypeID
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("bookable stay reports capacity and total", func(t *testing.T) {
		q, roomTypeID := newQuoteService(t, 5, 2, nil)

		quote, err := q.Quote(ctx, roomTypeID, date(2024, 6, 20), date(2024, 6, 23))
		require.NoError(t, err)

		assert.True(t, quote.IsAvailable)
		assert.Equal(t, 5, quote.Availability.RoomCount)
		assert.Equal(t, 2, quote.Availability.BookedCount)
		assert.Equal(t, 3, quote.Availability.AvailableCount)
		assert.Equal(t, 3, quote.Nights)
		// 10000 + 15000 + 10000
		assert.Equal(t, int64(35000), quote.TotalAmountCents)
		assert.Empty(t, quote.Violations)
	})

	t.Run("rule violations make the quote unavailable", func(t *testing.T) {
		minStay, err := rule.New("min 5 nights", rule.MinStay{Nights: 5}, nil, nil, nil, 0)
		require.NoError(t, err)
		q, roomTypeID := newQuoteService(t, 5, 0, []rule.Rule{minStay})

		quote, err := q.Quote(ctx, roomTypeID, date(2024, 6, 20), date(2024, 6, 23))
		require.NoError(t, err)

		assert.False(t, quote.IsAvailable)
		assert.True(t, quote.Availability.IsAvailable, "capacity itself is fine")
		require.Len(t, quote.Violations, 1)
	})

	t.Run("full house makes the quote unavailable", func(t *testing.T) {
		q, roomTypeID := newQuoteService(t, 5, 5, nil)

		quote, err := q.Quote(ctx, roomTypeID, date(2024, 6, 20), date(2024, 6, 23))
		require.NoError(t, err)

		assert.False(t, quote.IsAvailable)
		assert.Equal(t, 0, quote.Availability.AvailableCount)
	})

	t.Run("overbooked counts clamp to zero", func(t *testing.T) {
		q, roomTypeID := newQuoteService(t, 5, 7, nil)

		quote, err := q.Quote(ctx, roomTypeID, date(2024, 6, 20), date(2024, 6, 23))
		require.NoError(t, err)
		assert.Equal(t, 0, quote.Availability.AvailableCount)
	})

	t.Run("invalid range", func(t *testing.T) {
		q, roomTypeID := newQuoteService(t, 5, 0, nil)
		_, err := q.Quote(ctx, roomTypeID, date(2024, 6, 23), date(2024, 6, 20))
		assert.True(t, errs.Is(err, queries.ErrInvalidStayRange))
	})
}

func TestAvailabilitySnapshot(t *testing.T) {
	s := queries.NewAvailabilitySnapshot(5, 4)
	assert.True(t, s.IsAvailable)
	assert.Equal(t, 1, s.AvailableCount)

	s = queries.NewAvailabilitySnapshot(5, 5)
	assert.False(t, s.IsAvailable)

	s = queries.NewAvailabilitySnapshot(5, 9)
	assert.False(t, s.IsAvailable)
	assert.Equal(t, 0, s.AvailableCount, "negative availability clamps to zero")
}
