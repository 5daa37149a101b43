package reservation

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidStayRange = errors.New("check-in must be before check-out")

// StayRange is the half-open interval [checkIn, checkOut). The open end
// lets adjacent stays share a boundary day without conflicting.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	if !checkIn.Before(checkOut) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{checkIn: checkIn, checkOut: checkOut}, nil
}

func (s StayRange) CheckIn() time.Time  { return s.checkIn }
func (s StayRange) CheckOut() time.Time { return s.checkOut }

// Nights rounds partial days up, so a one-and-a-half-day stay bills
// two nights.
func (s StayRange) Nights() int {
	return int(math.Ceil(s.checkOut.Sub(s.checkIn).Hours() / 24))
}

func (s StayRange) Overlaps(other StayRange) bool {
	return s.checkIn.Before(other.checkOut) && s.checkOut.After(other.checkIn)
}

// EachNight visits whole calendar days from check-in up to, not
// including, check-out. Returning false stops the walk.
func (s StayRange) EachNight(fn func(date time.Time) bool) {
	for d := s.checkIn; d.Before(s.checkOut); d = d.AddDate(0, 0, 1) {
		if !fn(d) {
			return
		}
	}
}

func (s StayRange) String() string {
	return fmt.Sprintf("[%s,%s)", s.checkIn.Format(time.RFC3339), s.checkOut.Format(time.RFC3339))
}

// SameCalendarDay compares two instants ignoring time-of-day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

type Guest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
