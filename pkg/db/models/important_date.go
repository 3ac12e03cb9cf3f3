package models

import (
	"time"

	"github.com/google/uuid"
)

// ImportantDate is a calendar event outside the duty roster flow.
type ImportantDate struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Date        time.Time `gorm:"column:date;type:date;not null"`
	Location    *string   `gorm:"column:location"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy collection name.
func (ImportantDate) TableName() string {
	return "important_dates"
}
