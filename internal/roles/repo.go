package roles

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
)

// Repository exposes duty role persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a roles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new duty role and returns the persisted model.
func (r *Repository) Create(ctx context.Context, role *models.DutyRole) (*models.DutyRole, error) {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// FindByID loads a duty role by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DutyRole, error) {
	var role models.DutyRole
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// List returns all duty roles ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.DutyRole, error) {
	var out []models.DutyRole
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the role's editable fields.
func (r *Repository) Update(ctx context.Context, role *models.DutyRole) error {
	return r.db.WithContext(ctx).
		Model(&models.DutyRole{}).
		Where("id = ?", role.ID).
		UpdateColumns(map[string]any{
			"name":        role.Name,
			"description": role.Description,
			"updated_at":  time.Now().UTC(),
		}).Error
}

// Delete removes the duty role row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.DutyRole{}).Error
}
