package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNegativePayment   = errors.New("payment amount cannot be negative")
	ErrRoomAlreadySet    = errors.New("room already assigned")
)

type Payment struct {
	Amount        Money
	Method        string
	TransactionID string
	PaidAt        time.Time
}

type Reservation struct {
	id            uuid.UUID
	number        string
	roomTypeID    uuid.UUID
	roomID        *uuid.UUID
	guest         Guest
	stay          StayRange
	status        Status
	totalAmount   Money
	paymentStatus PaymentStatus
	payments      []Payment
	source        Source
	notes         string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewReservation(
	number string,
	roomTypeID uuid.UUID,
	guest Guest,
	stay StayRange,
	totalAmount Money,
	source Source,
	notes string,
	now time.Time,
) *Reservation {
	if source == "" {
		source = SourceDirect
	}
	return &Reservation{
		id:            uuid.New(),
		number:        number,
		roomTypeID:    roomTypeID,
		guest:         guest,
		stay:          stay,
		status:        StatusConfirmed,
		totalAmount:   totalAmount,
		paymentStatus: PaymentPending,
		source:        source,
		notes:         notes,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructReservation(
	id uuid.UUID,
	number string,
	roomTypeID uuid.UUID,
	roomID *uuid.UUID,
	guest Guest,
	stay StayRange,
	status Status,
	totalAmount Money,
	paymentStatus PaymentStatus,
	payments []Payment,
	source Source,
	notes string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		number:        number,
		roomTypeID:    roomTypeID,
		roomID:        roomID,
		guest:         guest,
		stay:          stay,
		status:        status,
		totalAmount:   totalAmount,
		paymentStatus: paymentStatus,
		payments:      payments,
		source:        source,
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// TransitionTo enforces the lifecycle state machine. Checked-out,
// cancelled and no-show are terminal.
func (r *Reservation) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidTransition
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) AssignRoom(roomID uuid.UUID, now time.Time) error {
	if r.roomID != nil {
		return ErrRoomAlreadySet
	}
	id := roomID
	r.roomID = &id
	r.updatedAt = now
	return nil
}

// AddPayment appends a payment record and recomputes the payment
// status from the cumulative amount paid. Payments are never removed.
func (r *Reservation) AddPayment(p Payment, now time.Time) error {
	if p.Amount.IsNegative() {
		return ErrNegativePayment
	}
	r.payments = append(r.payments, p)

	var paid Money
	for _, pay := range r.payments {
		paid = paid.Add(pay.Amount)
	}
	switch {
	case paid.Cents() >= r.totalAmount.Cents():
		r.paymentStatus = PaymentPaid
	case paid.Cents() > 0:
		r.paymentStatus = PaymentPartiallyPaid
	}
	r.updatedAt = now
	return nil
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) Number() string               { return r.number }
func (r *Reservation) RoomTypeID() uuid.UUID        { return r.roomTypeID }
func (r *Reservation) RoomID() *uuid.UUID           { return r.roomID }
func (r *Reservation) Guest() Guest                 { return r.guest }
func (r *Reservation) Stay() StayRange              { return r.stay }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) TotalAmount() Money           { return r.totalAmount }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) Payments() []Payment          { return r.payments }
func (r *Reservation) Source() Source               { return r.source }
func (r *Reservation) Notes() string                { return r.notes }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
