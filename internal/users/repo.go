package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.AppUser, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by name, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status *enums.UserStatus) ([]models.AppUser, error) {
	q := r.db.WithContext(ctx).Model(&models.AppUser{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var out []models.AppUser
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus overwrites the user's approval status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.AppUser{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// UpdateRole overwrites the user's role.
func (r *Repository) UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error {
	return r.db.WithContext(ctx).
		Model(&models.AppUser{}).
		Where("id = ?", id).
		UpdateColumn("role", role).Error
}

// UpdateProfile writes the user's editable profile fields and stamps last_profile_update.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, name string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AppUser{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"name":                name,
			"last_profile_update": at,
		}).Error
}

// UpdateLastLogin refreshes the user's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AppUser{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// Delete removes the user row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.AppUser{}).Error
}
