package rosters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	dbtypes "github.com/caioalmeida/mediateam-backend/pkg/db/types"
)

// Repository exposes roster persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a rosters repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new roster and returns the persisted model.
func (r *Repository) Create(ctx context.Context, roster *models.DutyRoster) (*models.DutyRoster, error) {
	if err := r.db.WithContext(ctx).Create(roster).Error; err != nil {
		return nil, err
	}
	return roster, nil
}

// FindByID loads a roster by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DutyRoster, error) {
	var roster models.DutyRoster
	if err := r.db.WithContext(ctx).First(&roster, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &roster, nil
}

// List returns rosters ordered ascending by date, optionally bounded to a window.
func (r *Repository) List(ctx context.Context, from, to *time.Time) ([]models.DutyRoster, error) {
	q := r.db.WithContext(ctx).Model(&models.DutyRoster{})
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	var out []models.DutyRoster
	if err := q.Order("date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the roster's editable fields. Assignments and song ids
// are replaced wholesale, matching the document-style write model.
func (r *Repository) Update(ctx context.Context, roster *models.DutyRoster) error {
	return r.db.WithContext(ctx).
		Model(&models.DutyRoster{}).
		Where("id = ?", roster.ID).
		UpdateColumns(map[string]any{
			"date":        roster.Date,
			"description": roster.Description,
			"assignments": roster.Assignments,
			"song_ids":    roster.SongIDs,
			"updated_at":  time.Now().UTC(),
		}).Error
}

// UpdateAssignments replaces only the assignments array. The swap workflow
// uses this inside its transaction so roster metadata edits are untouched.
func (r *Repository) UpdateAssignments(ctx context.Context, id uuid.UUID, assignments dbtypes.AssignmentList) error {
	return r.db.WithContext(ctx).
		Model(&models.DutyRoster{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"assignments": assignments,
			"updated_at":  time.Now().UTC(),
		}).Error
}

// Delete removes the roster row. Swap requests referencing it are left in
// place and resolved by the orphan cleanup job.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.DutyRoster{}).Error
}
