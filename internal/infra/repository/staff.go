package repository

import (
	"context"

	"stayhub/internal/domain/staff"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StaffRepository struct {
	pool *pgxpool.Pool
}

func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	return r.findBy(ctx, `
		SELECT id, email, password_hash, first_name, last_name, role, is_active
		FROM staff WHERE email = $1
	`, email)
}

func (r *StaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*staff.Staff, error) {
	return r.findBy(ctx, `
		SELECT id, email, password_hash, first_name, last_name, role, is_active
		FROM staff WHERE id = $1
	`, id)
}

func (r *StaffRepository) findBy(ctx context.Context, query string, arg any) (*staff.Staff, error) {
	var (
		member staff.Staff
		role   string
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&member.ID, &member.Email, &member.PasswordHash,
		&member.FirstName, &member.LastName, &role, &member.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("staff not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find staff", err)
	}
	member.Role = staff.Role(role)
	return &member, nil
}
