package repository

import (
	"context"

	"stayhub/internal/domain/reservation"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, reservation_number, room_type_id, room_id,
		       guest_first_name, guest_last_name, guest_email, guest_phone,
		       check_in, check_out, status, total_amount_cents,
		       payment_status, source, notes, created_at, updated_at
		FROM reservations WHERE id=$1
	`, id)

	var (
		resID, roomTypeID          uuid.UUID
		number                     string
		roomID                     pgtype.UUID
		firstName, lastName, email string
		phone, notes               pgtype.Text
		checkIn, checkOut          pgtype.Timestamptz
		status, payStatus, source  string
		totalCents                 int64
		createdAt, updatedAt       pgtype.Timestamptz
	)
	err := row.Scan(&resID, &number, &roomTypeID, &roomID,
		&firstName, &lastName, &email, &phone,
		&checkIn, &checkOut, &status, &totalCents,
		&payStatus, &source, &notes, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	payments, err := r.loadPayments(ctx, resID)
	if err != nil {
		return nil, err
	}

	stay, err := reservation.NewStayRange(pgconv.TimeFromPgtype(checkIn), pgconv.TimeFromPgtype(checkOut))
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid stay range", err)
	}

	guest := reservation.Guest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	if p := pgconv.StringPtrFromPgtype(phone); p != nil {
		guest.Phone = *p
	}
	var notesStr string
	if n := pgconv.StringPtrFromPgtype(notes); n != nil {
		notesStr = *n
	}

	return reservation.ReconstructReservation(
		resID, number, roomTypeID, pgconv.UUIDPtrFromPgtype(roomID),
		guest, stay,
		reservation.Status(status),
		reservation.NewMoney(totalCents),
		reservation.PaymentStatus(payStatus),
		payments,
		reservation.Source(source),
		notesStr,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *ReservationRepository) loadPayments(ctx context.Context, reservationID uuid.UUID) ([]reservation.Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT amount_cents, method, transaction_id, paid_at
		FROM reservation_payments WHERE reservation_id=$1 ORDER BY paid_at, id
	`, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load payments", err)
	}
	defer rows.Close()

	var payments []reservation.Payment
	for rows.Next() {
		var (
			amount int64
			method string
			txID   string
			paidAt pgtype.Timestamptz
		)
		if err := rows.Scan(&amount, &method, &txID, &paidAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment", err)
		}
		payments = append(payments, reservation.Payment{
			Amount:        reservation.NewMoney(amount),
			Method:        method,
			TransactionID: txID,
			PaidAt:        pgconv.TimeFromPgtype(paidAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read payments", err)
	}
	return payments, nil
}

// CountConflicting applies half-open interval overlap: an existing
// stay conflicts when it starts before the requested check-out and
// ends after the requested check-in.
func (r *ReservationRepository) CountConflicting(ctx context.Context, roomTypeID uuid.UUID, stay reservation.StayRange, excludeID *uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM reservations
		WHERE room_type_id=$1
		  AND status NOT IN ('cancelled', 'no-show')
		  AND check_in < $2 AND check_out > $3
	`
	args := []any{roomTypeID, stay.CheckOut(), stay.CheckIn()}
	if excludeID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeID)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count conflicting reservations", err)
	}
	return count, nil
}

func (r *ReservationRepository) MaxNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var number string
	err := r.pool.QueryRow(ctx, `
		SELECT reservation_number FROM reservations
		WHERE reservation_number LIKE $1 || '%'
		ORDER BY reservation_number DESC LIMIT 1
	`, prefix).Scan(&number)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", nil
		}
		return "", infra.WrapRepoErr("failed to find max reservation number", err)
	}
	return number, nil
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	guest := res.Guest()
	var phone *string
	if guest.Phone != "" {
		phone = &guest.Phone
	}
	var notes *string
	if res.Notes() != "" {
		n := res.Notes()
		notes = &n
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO reservations (
			id, reservation_number, room_type_id, room_id,
			guest_first_name, guest_last_name, guest_email, guest_phone,
			check_in, check_out, status, total_amount_cents,
			payment_status, source, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		res.ID(), res.Number(), res.RoomTypeID(), pgconv.UUIDPtrToPgtype(res.RoomID()),
		guest.FirstName, guest.LastName, guest.Email, pgconv.StringPtrToPgtype(phone),
		res.Stay().CheckIn(), res.Stay().CheckOut(), res.Status().String(), res.TotalAmount().Cents(),
		res.PaymentStatus().String(), string(res.Source()), pgconv.StringPtrToPgtype(notes),
		res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reservations
		SET room_id=$2, status=$3, payment_status=$4, updated_at=$5
		WHERE id=$1
	`, res.ID(), pgconv.UUIDPtrToPgtype(res.RoomID()), res.Status().String(), res.PaymentStatus().String(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	return nil
}

// AddPayment appends the payment row and the recomputed payment status
// in one transaction.
func (r *ReservationRepository) AddPayment(ctx context.Context, reservationID uuid.UUID, p reservation.Payment, status reservation.PaymentStatus) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin payment transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO reservation_payments (reservation_id, amount_cents, method, transaction_id, paid_at)
		VALUES ($1,$2,$3,$4,$5)
	`, reservationID, p.Amount.Cents(), p.Method, p.TransactionID, p.PaidAt)
	if err != nil {
		return infra.WrapRepoErr("failed to insert payment", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE reservations SET payment_status=$2, updated_at=$3 WHERE id=$1
	`, reservationID, status.String(), p.PaidAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit payment transaction", err)
	}
	return nil
}

// FindViewByID backs the read side with a joined row shaped for the
// API response.
func (r *ReservationRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT r.id, r.reservation_number, r.room_type_id, rt.name, r.room_id,
		       r.guest_first_name, r.guest_last_name, r.guest_email, r.guest_phone,
		       r.check_in, r.check_out, r.status, r.total_amount_cents,
		       r.payment_status, r.source, r.notes, r.created_at, r.updated_at
		FROM reservations r
		JOIN room_types rt ON rt.id = r.room_type_id
		WHERE r.id=$1
	`, id)

	var (
		view                 queries.ReservationView
		roomID               pgtype.UUID
		phone, notes         pgtype.Text
		checkIn, checkOut    pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&view.ID, &view.Number, &view.RoomTypeID, &view.RoomTypeName, &roomID,
		&view.GuestFirstName, &view.GuestLastName, &view.GuestEmail, &phone,
		&checkIn, &checkOut, &view.Status, &view.TotalAmountCents,
		&view.PaymentStatus, &view.Source, &notes, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation view", err)
	}

	view.RoomID = pgconv.UUIDPtrFromPgtype(roomID)
	view.GuestPhone = pgconv.StringPtrFromPgtype(phone)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.CheckIn = pgconv.TimeFromPgtype(checkIn)
	view.CheckOut = pgconv.TimeFromPgtype(checkOut)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	payments, err := r.loadPayments(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		view.Payments = append(view.Payments, queries.PaymentView{
			AmountCents:   p.Amount.Cents(),
			Method:        p.Method,
			TransactionID: p.TransactionID,
			PaidAt:        p.PaidAt,
		})
	}
	return &view, nil
}

func (r *ReservationRepository) ListRecent(ctx context.Context, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.reservation_number, rt.name, r.guest_last_name,
		       r.check_in, r.check_out, r.status, r.created_at
		FROM reservations r
		JOIN room_types rt ON rt.id = r.room_type_id
		ORDER BY r.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			item                         queries.ReservationListItem
			checkIn, checkOut, createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.Number, &item.RoomTypeName, &item.GuestLastName,
			&checkIn, &checkOut, &item.Status, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		item.CheckIn = pgconv.TimeFromPgtype(checkIn)
		item.CheckOut = pgconv.TimeFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation list", err)
	}
	return items, nil
}
