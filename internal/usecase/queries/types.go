package queries

import (
	"time"

	"stayhub/internal/domain/rule"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type AvailabilitySnapshot struct {
	RoomCount      int  `json:"room_count"`
	BookedCount    int  `json:"booked_count"`
	AvailableCount int  `json:"available_count"`
	IsAvailable    bool `json:"is_available"`
}

// NewAvailabilitySnapshot clamps a negative available count (possible
// only when overbooked through an external path) to zero availability.
func NewAvailabilitySnapshot(roomCount, bookedCount int) AvailabilitySnapshot {
	available := roomCount - bookedCount
	if available < 0 {
		available = 0
	}
	return AvailabilitySnapshot{
		RoomCount:      roomCount,
		BookedCount:    bookedCount,
		AvailableCount: available,
		IsAvailable:    bookedCount < roomCount,
	}
}

// StayQuote answers an availability query: bookable only when capacity
// is free and no rule is violated.
type StayQuote struct {
	IsAvailable      bool                 `json:"is_available"`
	Availability     AvailabilitySnapshot `json:"availability"`
	Violations       []rule.Violation     `json:"rule_violations"`
	Nights           int                  `json:"nights"`
	TotalAmountCents int64                `json:"total_amount_cents"`
}

type PaymentView struct {
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id,omitempty"`
	PaidAt        time.Time `json:"paid_at"`
}

type ReservationView struct {
	ID               uuid.UUID     `json:"id"`
	Number           string        `json:"reservation_number"`
	RoomTypeID       uuid.UUID     `json:"room_type_id"`
	RoomTypeName     string        `json:"room_type_name"`
	RoomID           *uuid.UUID    `json:"room_id,omitempty"`
	GuestFirstName   string        `json:"guest_first_name"`
	GuestLastName    string        `json:"guest_last_name"`
	GuestEmail       string        `json:"guest_email"`
	GuestPhone       *string       `json:"guest_phone,omitempty"`
	CheckIn          time.Time     `json:"check_in"`
	CheckOut         time.Time     `json:"check_out"`
	Status           string        `json:"status"`
	TotalAmountCents int64         `json:"total_amount_cents"`
	PaymentStatus    string        `json:"payment_status"`
	Payments         []PaymentView `json:"payments,omitempty"`
	Source           string        `json:"source"`
	Notes            *string       `json:"notes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type ReservationListItem struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"reservation_number"`
	RoomTypeName  string    `json:"room_type_name"`
	GuestLastName string    `json:"guest_last_name"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type RuleView struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	RuleType  string      `json:"rule_type"`
	Value     any         `json:"value"`
	RoomTypes []uuid.UUID `json:"room_types,omitempty"`
	ValidFrom *time.Time  `json:"valid_from,omitempty"`
	ValidTo   *time.Time  `json:"valid_to,omitempty"`
	IsActive  bool        `json:"is_active"`
	Priority  int         `json:"priority"`
}
