package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	Email             string           `json:"email"`
	Role              enums.UserRole   `json:"role"`
	Status            enums.UserStatus `json:"status"`
	LastProfileUpdate *time.Time       `json:"last_profile_update,omitempty"`
	LastLoginAt       *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         *enums.UserRole
	Status       *enums.UserStatus
}

// UpdateProfileRequest carries the fields a user may edit on their own profile.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// ChangeRoleRequest carries a moderator's role assignment for another user.
type ChangeRoleRequest struct {
	Role enums.UserRole `json:"role" validate:"required"`
}

func FromModel(u *models.AppUser) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		Status:            u.Status,
		LastProfileUpdate: u.LastProfileUpdate,
		LastLoginAt:       u.LastLoginAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func FromModels(list []models.AppUser) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.AppUser {
	role := enums.UserRoleMember
	if c.Role != nil {
		role = *c.Role
	}
	status := enums.UserStatusPending
	if c.Status != nil {
		status = *c.Status
	}

	return &models.AppUser{
		ID:           uuid.New(),
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
		Status:       status,
	}
}
