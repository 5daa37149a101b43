package rule

import (
	"errors"
	"time"

	"stayhub/internal/domain/reservation"

	"github.com/google/uuid"
)

var ErrInvalidValue = errors.New("rule value does not match rule type")

type Type string

const (
	TypeMinStay        Type = "min_stay"
	TypeMaxStay        Type = "max_stay"
	TypeBlackoutDate   Type = "blackout_date"
	TypeCutoffTime     Type = "cutoff_time"
	TypeAdvanceBooking Type = "advance_booking"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeMinStay, TypeMaxStay, TypeBlackoutDate, TypeCutoffTime, TypeAdvanceBooking:
		return true
	default:
		return false
	}
}

// Constraint is the rule-type-dependent payload. Each kind carries its
// own strongly typed value, so evaluation needs no runtime shape
// checks.
type Constraint interface {
	Type() Type
}

type MinStay struct {
	Nights int
}

func (MinStay) Type() Type { return TypeMinStay }

type MaxStay struct {
	Nights int
}

func (MaxStay) Type() Type { return TypeMaxStay }

type Blackout struct {
	Dates []time.Time
}

func (Blackout) Type() Type { return TypeBlackoutDate }

// CutoffTime rejects requests arriving fewer than Hours before
// check-in.
type CutoffTime struct {
	Hours float64
}

func (CutoffTime) Type() Type { return TypeCutoffTime }

// AdvanceBooking rejects requests made more than Days ahead of
// check-in.
type AdvanceBooking struct {
	Days int
}

func (AdvanceBooking) Type() Type { return TypeAdvanceBooking }

// Rule is one active booking constraint. An empty room type list means
// the rule applies to every room type; a nil validity window means it
// applies to all time.
type Rule struct {
	ID          uuid.UUID
	Name        string
	Constraint  Constraint
	RoomTypeIDs []uuid.UUID
	ValidFrom   *time.Time
	ValidTo     *time.Time
	IsActive    bool
	Priority    int
}

func New(name string, c Constraint, roomTypeIDs []uuid.UUID, validFrom, validTo *time.Time, priority int) (Rule, error) {
	if err := validateConstraint(c); err != nil {
		return Rule{}, err
	}
	return Rule{
		ID:          uuid.New(),
		Name:        name,
		Constraint:  c,
		RoomTypeIDs: roomTypeIDs,
		ValidFrom:   validFrom,
		ValidTo:     validTo,
		IsActive:    true,
		Priority:    priority,
	}, nil
}

func validateConstraint(c Constraint) error {
	switch v := c.(type) {
	case MinStay:
		if v.Nights <= 0 {
			return ErrInvalidValue
		}
	case MaxStay:
		if v.Nights <= 0 {
			return ErrInvalidValue
		}
	case Blackout:
		if len(v.Dates) == 0 {
			return ErrInvalidValue
		}
	case CutoffTime:
		if v.Hours <= 0 {
			return ErrInvalidValue
		}
	case AdvanceBooking:
		if v.Days <= 0 {
			return ErrInvalidValue
		}
	default:
		return ErrInvalidValue
	}
	return nil
}

// AppliesTo re-checks the selection filter the store query uses.
func (r Rule) AppliesTo(roomTypeID uuid.UUID, stay reservation.StayRange) bool {
	if !r.IsActive {
		return false
	}
	if len(r.RoomTypeIDs) > 0 && !r.coversRoomType(roomTypeID) {
		return false
	}
	return r.windowIntersects(stay)
}

func (r Rule) coversRoomType(roomTypeID uuid.UUID) bool {
	for _, id := range r.RoomTypeIDs {
		if id == roomTypeID {
			return true
		}
	}
	return false
}

func (r Rule) windowIntersects(stay reservation.StayRange) bool {
	if r.ValidFrom == nil && r.ValidTo == nil {
		return true
	}
	if r.ValidFrom != nil && r.ValidFrom.After(stay.CheckOut()) {
		return false
	}
	if r.ValidTo != nil && r.ValidTo.Before(stay.CheckIn()) {
		return false
	}
	return true
}
