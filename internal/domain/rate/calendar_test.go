//go:build unit

package rate_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/rate"
	"stayhub/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, checkIn, checkOut time.Time) reservation.StayRange {
	t.Helper()
	stay, err := reservation.NewStayRange(checkIn, checkOut)
	require.NoError(t, err)
	return stay
}

func TestNewCalendar(t *testing.T) {
	_, err := rate.NewCalendar(uuid.New(), "Standard", 0, nil)
	assert.ErrorIs(t, err, rate.ErrInvalidBaseRate)

	_, err = rate.NewCalendar(uuid.New(), "Standard", -100, nil)
	assert.ErrorIs(t, err, rate.ErrInvalidBaseRate)

	c, err := rate.NewCalendar(uuid.New(), "Standard", 10000, []rate.Override{
		{Date: date(2024, 6, 17), PriceCents: 12000},
		{Date: date(2024, 6, 15), PriceCents: 11000},
	})
	require.NoError(t, err)
	overrides := c.Overrides()
	require.Len(t, overrides, 2)
	assert.True(t, overrides[0].Date.Before(overrides[1].Date), "overrides must be date ordered")
}

func TestCalendarPriceFor(t *testing.T) {
	c, err := rate.NewCalendar(uuid.New(), "Standard", 10000, []rate.Override{
		{Date: date(2024, 6, 16), PriceCents: 15000, IsSpecial: true, Reason: "festival"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), c.PriceFor(date(2024, 6, 15)))
	assert.Equal(t, int64(15000), c.PriceFor(date(2024, 6, 16)))
	assert.Equal(t, int64(15000), c.PriceFor(time.Date(2024, 6, 16, 18, 0, 0, 0, time.UTC)),
		"time of day must not affect the override match")
}

func TestCalendarTotalFor(t *testing.T) {
	c, err := rate.NewCalendar(uuid.New(), "Standard", 10000, []rate.Override{
		{Date: date(2024, 6, 16), PriceCents: 15000},
	})
	require.NoError(t, err)

	t.Run("sums per-night prices, checkout day excluded", func(t *testing.T) {
		stay := mustStay(t, date(2024, 6, 15), date(2024, 6, 18))
		// 10000 + 15000 + 10000
		assert.Equal(t, int64(35000), c.TotalFor(stay))
	})

	t.Run("single night on an override date", func(t *testing.T) {
		stay := mustStay(t, date(2024, 6, 16), date(2024, 6, 17))
		assert.Equal(t, int64(15000), c.TotalFor(stay))
	})

	t.Run("override on checkout day does not count", func(t *testing.T) {
		stay := mustStay(t, date(2024, 6, 14), date(2024, 6, 16))
		assert.Equal(t, int64(20000), c.TotalFor(stay))
	})
}

func TestCalendarUpsertOverride(t *testing.T) {
	c, err := rate.NewCalendar(uuid.New(), "Standard", 10000, []rate.Override{
		{Date: date(2024, 6, 16), PriceCents: 15000},
	})
	require.NoError(t, err)

	t.Run("replaces the override for the same date", func(t *testing.T) {
		c.UpsertOverride(rate.Override{Date: date(2024, 6, 16), PriceCents: 18000})
		require.Len(t, c.Overrides(), 1)
		assert.Equal(t, int64(18000), c.PriceFor(date(2024, 6, 16)))
	})

	t.Run("inserts new dates in order", func(t *testing.T) {
		c.UpsertOverride(rate.Override{Date: date(2024, 6, 14), PriceCents: 9000})
		overrides := c.Overrides()
		require.Len(t, overrides, 2)
		assert.Equal(t, date(2024, 6, 14), overrides[0].Date)
		assert.Equal(t, date(2024, 6, 16), overrides[1].Date)
	})
}
