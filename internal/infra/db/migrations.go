package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS staff (
	id UUID PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS room_types (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	base_rate_cents BIGINT NOT NULL CHECK (base_rate_cents > 0)
);

CREATE TABLE IF NOT EXISTS room_type_rates (
	room_type_id UUID NOT NULL REFERENCES room_types(id) ON DELETE CASCADE,
	rate_date DATE NOT NULL,
	price_cents BIGINT NOT NULL,
	is_special BOOLEAN NOT NULL DEFAULT FALSE,
	reason TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (room_type_id, rate_date)
);

CREATE TABLE IF NOT EXISTS rooms (
	id UUID PRIMARY KEY,
	room_number TEXT NOT NULL,
	room_type_id UUID NOT NULL REFERENCES room_types(id),
	floor INT NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'available',
	is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS booking_rules (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	rule_type TEXT NOT NULL,
	rule_value JSONB NOT NULL,
	room_type_ids UUID[] NOT NULL DEFAULT '{}',
	valid_from TIMESTAMPTZ,
	valid_to TIMESTAMPTZ,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	priority INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS reservations (
	id UUID PRIMARY KEY,
	reservation_number TEXT UNIQUE NOT NULL,
	room_type_id UUID NOT NULL REFERENCES room_types(id),
	room_id UUID REFERENCES rooms(id),
	guest_first_name TEXT NOT NULL,
	guest_last_name TEXT NOT NULL,
	guest_email TEXT NOT NULL,
	guest_phone TEXT,
	check_in TIMESTAMPTZ NOT NULL,
	check_out TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'confirmed',
	total_amount_cents BIGINT NOT NULL,
	payment_status TEXT NOT NULL DEFAULT 'pending',
	source TEXT NOT NULL DEFAULT 'direct',
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reservation_payments (
	id BIGSERIAL PRIMARY KEY,
	reservation_id UUID NOT NULL REFERENCES reservations(id) ON DELETE CASCADE,
	amount_cents BIGINT NOT NULL,
	method TEXT NOT NULL,
	transaction_id TEXT NOT NULL DEFAULT '',
	paid_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reservations_number ON reservations(reservation_number);
CREATE INDEX IF NOT EXISTS idx_reservations_conflict ON reservations(room_type_id, check_in, check_out);
CREATE INDEX IF NOT EXISTS idx_rooms_type_status ON rooms(room_type_id, status);
`

// Migrate applies the idempotent schema. The unique index on
// reservation_number is what turns allocator races into retryable
// duplicate-key errors instead of silent collisions.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
