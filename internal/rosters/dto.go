package rosters

import (
	"time"

	"github.com/google/uuid"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	dbtypes "github.com/caioalmeida/mediateam-backend/pkg/db/types"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
)

// AssignmentInput is one slot in a roster create/update payload.
type AssignmentInput struct {
	UserID   uuid.UUID               `json:"user_id" validate:"required"`
	UserName string                  `json:"user_name" validate:"required"`
	RoleID   uuid.UUID               `json:"role_id" validate:"required"`
	RoleName string                  `json:"role_name" validate:"required"`
	Status   *enums.AssignmentStatus `json:"status,omitempty"`
}

// CreateRosterRequest is the payload for creating a roster.
type CreateRosterRequest struct {
	Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
	Description string            `json:"description" validate:"required"`
	Assignments []AssignmentInput `json:"assignments" validate:"dive"`
	SongIDs     []uuid.UUID       `json:"song_ids"`
}

// UpdateRosterRequest replaces the roster's fields wholesale.
type UpdateRosterRequest struct {
	Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
	Description string            `json:"description" validate:"required"`
	Assignments []AssignmentInput `json:"assignments" validate:"dive"`
	SongIDs     []uuid.UUID       `json:"song_ids"`
}

// SongSummary is the hydrated song reference embedded in roster responses.
type SongSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Artist string    `json:"artist"`
	Key    *string   `json:"key,omitempty"`
}

// RosterDTO is the transport shape for a roster with hydrated songs.
type RosterDTO struct {
	ID          uuid.UUID            `json:"id"`
	Date        string               `json:"date"`
	Description string               `json:"description"`
	Assignments []dbtypes.Assignment `json:"assignments"`
	Songs       []SongSummary        `json:"songs"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func fromModel(m *models.DutyRoster, songs []SongSummary) *RosterDTO {
	if m == nil {
		return nil
	}
	assignments := m.Assignments
	if assignments == nil {
		assignments = dbtypes.AssignmentList{}
	}
	if songs == nil {
		songs = []SongSummary{}
	}
	return &RosterDTO{
		ID:          m.ID,
		Date:        m.Date.Format(dateLayout),
		Description: m.Description,
		Assignments: assignments,
		Songs:       songs,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
