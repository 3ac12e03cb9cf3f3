package songs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
)

// SongRequest is the payload for creating or updating a song.
type SongRequest struct {
	Title  string  `json:"title" validate:"required,min=1,max=200"`
	Artist string  `json:"artist"`
	Key    *string `json:"key,omitempty"`
	Lyrics *string `json:"lyrics,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// SongDTO is the transport shape of a praise song.
type SongDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Key       *string   `json:"key,omitempty"`
	Lyrics    *string   `json:"lyrics,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service defines the behavior needed by the songs controller.
type Service interface {
	Create(ctx context.Context, req SongRequest) (*SongDTO, error)
	Update(ctx context.Context, id uuid.UUID, req SongRequest) (*SongDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*SongDTO, error)
	List(ctx context.Context, search string) ([]SongDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, song *models.PraiseSong) (*models.PraiseSong, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PraiseSong, error)
	List(ctx context.Context, search string) ([]models.PraiseSong, error)
	Update(ctx context.Context, song *models.PraiseSong) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a songs service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a songs service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("songs repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, req SongRequest) (*SongDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	song, err := s.repo.Create(ctx, &models.PraiseSong{
		Title:   title,
		Artist:  strings.TrimSpace(req.Artist),
		SongKey: req.Key,
		Lyrics:  req.Lyrics,
		Notes:   req.Notes,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create song")
	}
	return fromModel(song), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req SongRequest) (*SongDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	song, err := s.findSong(ctx, id)
	if err != nil {
		return nil, err
	}

	song.Title = title
	song.Artist = strings.TrimSpace(req.Artist)
	song.SongKey = req.Key
	song.Lyrics = req.Lyrics
	song.Notes = req.Notes

	if err := s.repo.Update(ctx, song); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update song")
	}
	return fromModel(song), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SongDTO, error) {
	song, err := s.findSong(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromModel(song), nil
}

func (s *service) List(ctx context.Context, search string) ([]SongDTO, error) {
	list, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list songs")
	}
	out := make([]SongDTO, 0, len(list))
	for i := range list {
		out = append(out, *fromModel(&list[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findSong(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete song")
	}
	return nil
}

func (s *service) findSong(ctx context.Context, id uuid.UUID) (*models.PraiseSong, error) {
	song, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "song not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup song")
	}
	return song, nil
}

func fromModel(m *models.PraiseSong) *SongDTO {
	return &SongDTO{
		ID:        m.ID,
		Title:     m.Title,
		Artist:    m.Artist,
		Key:       m.SongKey,
		Lyrics:    m.Lyrics,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
