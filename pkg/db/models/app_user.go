package models

import (
	"time"

	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/google/uuid"
)

// AppUser represents the canonical identity entity. Role and status together
// drive every authorization decision in the API.
type AppUser struct {
	ID                uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string           `gorm:"column:name;not null"`
	Email             string           `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash      string           `gorm:"column:password_hash;not null"`
	Role              enums.UserRole   `gorm:"column:role;type:text;not null;default:member"`
	Status            enums.UserStatus `gorm:"column:status;type:text;not null;default:pending"`
	LastProfileUpdate *time.Time       `gorm:"column:last_profile_update"`
	LastLoginAt       *time.Time       `gorm:"column:last_login_at"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy collection name.
func (AppUser) TableName() string {
	return "app_users"
}
