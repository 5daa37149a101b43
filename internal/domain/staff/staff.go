package staff

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleFrontDesk    Role = "front_desk"
	RoleHousekeeping Role = "housekeeping"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleFrontDesk, RoleHousekeeping:
		return true
	default:
		return false
	}
}

type Staff struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
}
