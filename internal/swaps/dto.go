package swaps

import (
	"time"

	"github.com/google/uuid"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
)

// CreateSwapRequest is a member's payload asking to move their assignment.
type CreateSwapRequest struct {
	OriginalRosterID uuid.UUID `json:"original_roster_id" validate:"required"`
	TargetRosterID   uuid.UUID `json:"target_roster_id" validate:"required"`
}

// SwapRequestDTO is the transport shape of a swap request with its snapshots.
type SwapRequestDTO struct {
	ID                 uuid.UUID               `json:"id"`
	UserID             uuid.UUID               `json:"user_id"`
	UserName           string                  `json:"user_name"`
	OriginalRosterID   uuid.UUID               `json:"original_roster_id"`
	OriginalRosterDate string                  `json:"original_roster_date"`
	TargetRosterID     uuid.UUID               `json:"target_roster_id"`
	TargetRosterDesc   string                  `json:"target_roster_desc"`
	RoleID             uuid.UUID               `json:"role_id"`
	RoleName           string                  `json:"role_name"`
	Status             enums.SwapRequestStatus `json:"status"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func fromModel(m *models.SwapRequest) *SwapRequestDTO {
	if m == nil {
		return nil
	}
	return &SwapRequestDTO{
		ID:                 m.ID,
		UserID:             m.UserID,
		UserName:           m.UserName,
		OriginalRosterID:   m.OriginalRosterID,
		OriginalRosterDate: m.OriginalRosterDate.Format(dateLayout),
		TargetRosterID:     m.TargetRosterID,
		TargetRosterDesc:   m.TargetRosterDesc,
		RoleID:             m.RoleID,
		RoleName:           m.RoleName,
		Status:             m.Status,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func fromModels(list []models.SwapRequest) []SwapRequestDTO {
	out := make([]SwapRequestDTO, 0, len(list))
	for i := range list {
		out = append(out, *fromModel(&list[i]))
	}
	return out
}
