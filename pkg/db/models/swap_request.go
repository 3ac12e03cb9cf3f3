package models

import (
	"time"

	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/google/uuid"
)

// SwapRequest records a member's request to move their assignment to another
// roster. Names, dates and descriptions are snapshots taken at request time.
// Requests are never deleted; the table is the swap audit trail.
type SwapRequest struct {
	ID                 uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID               `gorm:"column:user_id;type:uuid;not null"`
	UserName           string                  `gorm:"column:user_name;not null"`
	OriginalRosterID   uuid.UUID               `gorm:"column:original_roster_id;type:uuid;not null"`
	OriginalRosterDate time.Time               `gorm:"column:original_roster_date;type:date;not null"`
	TargetRosterID     uuid.UUID               `gorm:"column:target_roster_id;type:uuid;not null"`
	TargetRosterDesc   string                  `gorm:"column:target_roster_desc;not null"`
	RoleID             uuid.UUID               `gorm:"column:role_id;type:uuid;not null"`
	RoleName           string                  `gorm:"column:role_name;not null"`
	Status             enums.SwapRequestStatus `gorm:"column:status;type:text;not null;default:pending"`
	CreatedAt          time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy collection name.
func (SwapRequest) TableName() string {
	return "swap_requests"
}
