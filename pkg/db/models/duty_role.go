package models

import (
	"time"

	"github.com/google/uuid"
)

// DutyRole is a named function a member can be assigned (camera, sound, ...).
// Deleting a role does not touch assignment snapshots that reference it.
type DutyRole struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy collection name.
func (DutyRole) TableName() string {
	return "duty_roles"
}
