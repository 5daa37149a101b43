package request

import (
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

const stayDateLayout = "2006-01-02"

var ErrInvalidDateFormat = errors.New("dates must use the YYYY-MM-DD format")

type CreateReservationRequest struct {
	RoomTypeID     uuid.UUID `json:"room_type_id" binding:"required"`
	GuestFirstName string    `json:"guest_first_name" binding:"required"`
	GuestLastName  string    `json:"guest_last_name" binding:"required"`
	GuestEmail     string    `json:"guest_email" binding:"required,email"`
	GuestPhone     string    `json:"guest_phone,omitempty"`
	CheckIn        string    `json:"check_in" binding:"required"`
	CheckOut       string    `json:"check_out" binding:"required"`
	Source         string    `json:"source,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}

func (r CreateReservationRequest) ToParams() (commands.CreateReservationParams, error) {
	checkIn, checkOut, err := parseStayDates(r.CheckIn, r.CheckOut)
	if err != nil {
		return commands.CreateReservationParams{}, err
	}

	return commands.CreateReservationParams{
		RoomTypeID: r.RoomTypeID,
		Guest: reservation.Guest{
			FirstName: strings.TrimSpace(r.GuestFirstName),
			LastName:  strings.TrimSpace(r.GuestLastName),
			Email:     strings.TrimSpace(r.GuestEmail),
			Phone:     strings.TrimSpace(r.GuestPhone),
		},
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Source:   reservation.Source(r.Source),
		Notes:    strings.TrimSpace(r.Notes),
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddPaymentRequest struct {
	AmountCents   int64  `json:"amount_cents" binding:"required"`
	Method        string `json:"method" binding:"required"`
	TransactionID string `json:"transaction_id,omitempty"`
}

func (r AddPaymentRequest) ToParams() commands.AddPaymentParams {
	return commands.AddPaymentParams{
		AmountCents:   r.AmountCents,
		Method:        r.Method,
		TransactionID: r.TransactionID,
	}
}

// parseStayDates accepts calendar dates and widens them to midnight
// UTC, matching how reservations are stored.
func parseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(stayDateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	out, err := time.Parse(stayDateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	return in, out, nil
}
