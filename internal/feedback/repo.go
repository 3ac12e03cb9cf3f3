package feedback

import (
	"context"

	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/pagination"
)

// Repository exposes feedback persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a feedback repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new feedback entry and returns the persisted model.
func (r *Repository) Create(ctx context.Context, entry *models.FeedbackEntry) (*models.FeedbackEntry, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListPage returns a keyset page of entries, newest first. The caller passes
// a buffered limit and trims the extra row to detect the next page.
func (r *Repository) ListPage(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.FeedbackEntry, error) {
	q := r.db.WithContext(ctx).Model(&models.FeedbackEntry{})
	if cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var out []models.FeedbackEntry
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
