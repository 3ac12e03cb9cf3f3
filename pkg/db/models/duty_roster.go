package models

import (
	"time"

	dbtypes "github.com/caioalmeida/mediateam-backend/pkg/db/types"
	"github.com/google/uuid"
)

// DutyRoster is one service/event's media-team staffing record. Assignments
// live as an ordered jsonb document owned by the roster; song references are
// ids only and may dangle after a song is deleted.
type DutyRoster struct {
	ID          uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Date        time.Time              `gorm:"column:date;type:date;not null"`
	Description string                 `gorm:"column:description;not null"`
	Assignments dbtypes.AssignmentList `gorm:"column:assignments;type:jsonb;not null;default:'[]'"`
	SongIDs     dbtypes.UUIDArray      `gorm:"column:song_ids;type:uuid[];not null;default:'{}'"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy collection name.
func (DutyRoster) TableName() string {
	return "duty_rosters"
}
