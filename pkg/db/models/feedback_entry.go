package models

import (
	"time"

	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/google/uuid"
)

// FeedbackEntry is a free-text submission from a team member.
type FeedbackEntry struct {
	ID                 uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Type               enums.FeedbackType `gorm:"column:type;type:text;not null"`
	Message            string             `gorm:"column:message;not null"`
	SubmittedByUserID  uuid.UUID          `gorm:"column:submitted_by_user_id;type:uuid;not null"`
	SubmissionDateTime time.Time          `gorm:"column:submission_date_time;not null"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the legacy collection name.
func (FeedbackEntry) TableName() string {
	return "feedback"
}
