package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
)

// Repository exposes important date persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an events repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new event and returns the persisted model.
func (r *Repository) Create(ctx context.Context, event *models.ImportantDate) (*models.ImportantDate, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// FindByID loads an event by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ImportantDate, error) {
	var event models.ImportantDate
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns events ordered ascending by date, optionally bounded to a window.
func (r *Repository) List(ctx context.Context, from, to *time.Time) ([]models.ImportantDate, error) {
	q := r.db.WithContext(ctx).Model(&models.ImportantDate{})
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	var out []models.ImportantDate
	if err := q.Order("date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the event's editable fields.
func (r *Repository) Update(ctx context.Context, event *models.ImportantDate) error {
	return r.db.WithContext(ctx).
		Model(&models.ImportantDate{}).
		Where("id = ?", event.ID).
		UpdateColumns(map[string]any{
			"title":       event.Title,
			"description": event.Description,
			"date":        event.Date,
			"location":    event.Location,
			"updated_at":  time.Now().UTC(),
		}).Error
}

// Delete removes the event row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ImportantDate{}).Error
}
