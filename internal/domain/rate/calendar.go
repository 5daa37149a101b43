package rate

import (
	"errors"
	"sort"
	"time"

	"stayhub/internal/domain/reservation"

	"github.com/google/uuid"
)

var ErrInvalidBaseRate = errors.New("base rate must be positive")

// Override replaces the base rate for one calendar date. Time-of-day
// on Date is ignored; at most one override exists per date.
type Override struct {
	Date       time.Time
	PriceCents int64
	IsSpecial  bool
	Reason     string
}

// Calendar owns a room type's base rate and its date-keyed overrides,
// kept sorted by date after every mutation.
type Calendar struct {
	roomTypeID    uuid.UUID
	name          string
	baseRateCents int64
	overrides     []Override
}

func NewCalendar(roomTypeID uuid.UUID, name string, baseRateCents int64, overrides []Override) (*Calendar, error) {
	if baseRateCents <= 0 {
		return nil, ErrInvalidBaseRate
	}
	c := &Calendar{
		roomTypeID:    roomTypeID,
		name:          name,
		baseRateCents: baseRateCents,
		overrides:     overrides,
	}
	c.sortOverrides()
	return c, nil
}

func (c *Calendar) RoomTypeID() uuid.UUID { return c.roomTypeID }
func (c *Calendar) Name() string          { return c.name }
func (c *Calendar) BaseRateCents() int64  { return c.baseRateCents }
func (c *Calendar) Overrides() []Override { return c.overrides }

// PriceFor returns the override price for the date's calendar day if
// one exists, otherwise the base rate.
func (c *Calendar) PriceFor(date time.Time) int64 {
	for _, o := range c.overrides {
		if reservation.SameCalendarDay(o.Date, date) {
			return o.PriceCents
		}
	}
	return c.baseRateCents
}

// TotalFor prices every night of the stay, check-in inclusive and
// check-out exclusive.
func (c *Calendar) TotalFor(stay reservation.StayRange) int64 {
	var total int64
	stay.EachNight(func(date time.Time) bool {
		total += c.PriceFor(date)
		return true
	})
	return total
}

// UpsertOverride replaces any override for the same calendar date
// rather than duplicating, then restores date order.
func (c *Calendar) UpsertOverride(o Override) {
	for i, existing := range c.overrides {
		if reservation.SameCalendarDay(existing.Date, o.Date) {
			c.overrides[i] = o
			c.sortOverrides()
			return
		}
	}
	c.overrides = append(c.overrides, o)
	c.sortOverrides()
}

func (c *Calendar) sortOverrides() {
	sort.Slice(c.overrides, func(i, j int) bool {
		return c.overrides[i].Date.Before(c.overrides[j].Date)
	})
}
