package usecase

import (
	"context"
	"errors"

	"stayhub/internal/domain/staff"
	"stayhub/internal/pkg/jwt"
	"stayhub/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrStaffNotFound      = errors.New("staff not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStaffInactive      = errors.New("staff account is inactive")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

type StaffRepository interface {
	FindByEmail(ctx context.Context, email string) (*staff.Staff, error)
	FindByID(ctx context.Context, id uuid.UUID) (*staff.Staff, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (string, *staff.Staff, error)
	GetCurrentStaff(ctx context.Context, staffID uuid.UUID) (*staff.Staff, error)
}

type authUseCaseImpl struct {
	staffRepo  StaffRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(staffRepo StaffRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		staffRepo:  staffRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, *staff.Staff, error) {
	member, err := a.staffRepo.FindByEmail(ctx, email)
	if err != nil || member == nil {
		return "", nil, ErrStaffNotFound
	}
	if !member.IsActive {
		return "", nil, ErrStaffInactive
	}

	if err := password.ComparePassword(member.PasswordHash, plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(member.ID, member.Role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, member, nil
}

func (a *authUseCaseImpl) GetCurrentStaff(ctx context.Context, staffID uuid.UUID) (*staff.Staff, error) {
	member, err := a.staffRepo.FindByID(ctx, staffID)
	if err != nil || member == nil {
		return nil, ErrStaffNotFound
	}
	if !member.IsActive {
		return nil, ErrStaffInactive
	}
	return member, nil
}
