package response

import (
	"time"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PaymentResponse struct {
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id,omitempty"`
	PaidAt        time.Time `json:"paid_at"`
}

type ReservationResponse struct {
	ID               uuid.UUID         `json:"id"`
	Number           string            `json:"reservation_number"`
	RoomTypeID       uuid.UUID         `json:"room_type_id"`
	RoomTypeName     string            `json:"room_type_name,omitempty"`
	RoomID           *uuid.UUID        `json:"room_id,omitempty"`
	GuestFirstName   string            `json:"guest_first_name"`
	GuestLastName    string            `json:"guest_last_name"`
	GuestEmail       string            `json:"guest_email"`
	GuestPhone       string            `json:"guest_phone,omitempty"`
	CheckIn          time.Time         `json:"check_in"`
	CheckOut         time.Time         `json:"check_out"`
	Nights           int               `json:"nights"`
	Status           string            `json:"status"`
	TotalAmountCents int64             `json:"total_amount_cents"`
	PaymentStatus    string            `json:"payment_status"`
	Payments         []PaymentResponse `json:"payments,omitempty"`
	Source           string            `json:"source"`
	Notes            string            `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type ReservationListResponse struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"reservation_number"`
	RoomTypeName  string    `json:"room_type_name"`
	GuestLastName string    `json:"guest_last_name"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromReservation maps the write-side aggregate, so command endpoints
// can answer without a follow-up read.
func FromReservation(res *reservation.Reservation) *ReservationResponse {
	guest := res.Guest()
	payments := make([]PaymentResponse, len(res.Payments()))
	for i, p := range res.Payments() {
		payments[i] = PaymentResponse{
			AmountCents:   p.Amount.Cents(),
			Method:        p.Method,
			TransactionID: p.TransactionID,
			PaidAt:        p.PaidAt,
		}
	}
	return &ReservationResponse{
		ID:               res.ID(),
		Number:           res.Number(),
		RoomTypeID:       res.RoomTypeID(),
		RoomID:           res.RoomID(),
		GuestFirstName:   guest.FirstName,
		GuestLastName:    guest.LastName,
		GuestEmail:       guest.Email,
		GuestPhone:       guest.Phone,
		CheckIn:          res.Stay().CheckIn(),
		CheckOut:         res.Stay().CheckOut(),
		Nights:           res.Stay().Nights(),
		Status:           string(res.Status()),
		TotalAmountCents: res.TotalAmount().Cents(),
		PaymentStatus:    string(res.PaymentStatus()),
		Payments:         payments,
		Source:           string(res.Source()),
		Notes:            res.Notes(),
		CreatedAt:        res.CreatedAt(),
		UpdatedAt:        res.UpdatedAt(),
	}
}

func FromReservationView(view *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	resp.Nights = nightsBetween(view.CheckIn, view.CheckOut)
	return &resp, nil
}

func FromReservationListItem(item *queries.ReservationListItem) (*ReservationListResponse, error) {
	var resp ReservationListResponse
	if err := copier.Copy(&resp, item); err != nil {
		return nil, err
	}
	return &resp, nil
}

func nightsBetween(checkIn, checkOut time.Time) int {
	stay, err := reservation.NewStayRange(checkIn, checkOut)
	if err != nil {
		return 0
	}
	return stay.Nights()
}
