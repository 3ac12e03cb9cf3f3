package swaps

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
)

// Repository exposes swap request persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a swaps repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new swap request and returns the persisted model.
func (r *Repository) Create(ctx context.Context, req *models.SwapRequest) (*models.SwapRequest, error) {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// FindByID loads a swap request by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SwapRequest, error) {
	var req models.SwapRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByStatus returns requests in the given status, oldest first.
func (r *Repository) ListByStatus(ctx context.Context, status enums.SwapRequestStatus) ([]models.SwapRequest, error) {
	var out []models.SwapRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns all requests ever filed by the user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SwapRequest, error) {
	var out []models.SwapRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HasPendingForUserAndRoster reports whether the user already has an open
// request out of the given roster.
func (r *Repository) HasPendingForUserAndRoster(ctx context.Context, userID, rosterID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("user_id = ? AND original_roster_id = ? AND status = ?",
			userID, rosterID, enums.SwapRequestStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus transitions the request's status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.SwapRequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}
