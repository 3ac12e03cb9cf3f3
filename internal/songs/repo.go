package songs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
)

// Repository exposes praise song persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a songs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new song and returns the persisted model.
func (r *Repository) Create(ctx context.Context, song *models.PraiseSong) (*models.PraiseSong, error) {
	if err := r.db.WithContext(ctx).Create(song).Error; err != nil {
		return nil, err
	}
	return song, nil
}

// FindByID loads a song by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PraiseSong, error) {
	var song models.PraiseSong
	if err := r.db.WithContext(ctx).First(&song, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &song, nil
}

// List returns songs ordered by title, optionally filtered by a
// case-insensitive title/artist substring.
func (r *Repository) List(ctx context.Context, search string) ([]models.PraiseSong, error) {
	q := r.db.WithContext(ctx).Model(&models.PraiseSong{})
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(artist) LIKE ?", pattern, pattern)
	}
	var out []models.PraiseSong
	if err := q.Order("title ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByIDs loads the songs matching the provided ids. Missing ids are
// simply absent from the result.
func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.PraiseSong, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.PraiseSong
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the song's editable fields.
func (r *Repository) Update(ctx context.Context, song *models.PraiseSong) error {
	return r.db.WithContext(ctx).
		Model(&models.PraiseSong{}).
		Where("id = ?", song.ID).
		UpdateColumns(map[string]any{
			"title":      song.Title,
			"artist":     song.Artist,
			"song_key":   song.SongKey,
			"lyrics":     song.Lyrics,
			"notes":      song.Notes,
			"updated_at": time.Now().UTC(),
		}).Error
}

// Delete removes the song row. Rosters referencing it keep the dangling id;
// reads hydrate around it.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PraiseSong{}).Error
}
