package events

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

// EventRequest is the payload for creating or updating an event.
type EventRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Location    *string `json:"location,omitempty"`
}

// EventDTO is the transport shape of an important date.
type EventDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Location    *string   `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const dateLayout = "2006-01-02"

// Service defines the behavior needed by the events controller.
type Service interface {
	Create(ctx context.Context, req EventRequest) (*EventDTO, error)
	Update(ctx context.Context, id uuid.UUID, req EventRequest) (*EventDTO, error)
	List(ctx context.Context, from, to *time.Time) ([]EventDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, event *models.ImportantDate) (*models.ImportantDate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ImportantDate, error)
	List(ctx context.Context, from, to *time.Time) ([]models.ImportantDate, error)
	Update(ctx context.Context, event *models.ImportantDate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build an events service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs an events service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("events repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, req EventRequest) (*EventDTO, error) {
	title, date, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	event, err := s.repo.Create(ctx, &models.ImportantDate{
		Title:       title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create event")
	}
	return fromModel(event), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req EventRequest) (*EventDTO, error) {
	title, date, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Title = title
	event.Description = req.Description
	event.Date = date
	event.Location = req.Location

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update event")
	}
	return fromModel(event), nil
}

func (s *service) List(ctx context.Context, from, to *time.Time) ([]EventDTO, error) {
	list, err := s.repo.List(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list events")
	}
	out := make([]EventDTO, 0, len(list))
	for i := range list {
		out = append(out, *fromModel(&list[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findEvent(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete event")
	}
	return nil
}

func (s *service) findEvent(ctx context.Context, id uuid.UUID) (*models.ImportantDate, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup event")
	}
	return event, nil
}

func validateRequest(req EventRequest) (string, time.Time, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return "", time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	return title, date, nil
}

func fromModel(m *models.ImportantDate) *EventDTO {
	return &EventDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date.Format(dateLayout),
		Location:    m.Location,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
