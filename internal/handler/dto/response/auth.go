package response

import (
	"stayhub/internal/domain/staff"

	"github.com/google/uuid"
)

type StaffResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Staff       StaffResponse `json:"staff"`
}

func FromStaff(member *staff.Staff) StaffResponse {
	return StaffResponse{
		ID:        member.ID,
		Email:     member.Email,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Role:      string(member.Role),
		IsActive:  member.IsActive,
	}
}
