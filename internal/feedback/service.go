package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
	"github.com/caioalmeida/mediateam-backend/pkg/pagination"
)

// SubmitRequest is a member's feedback payload.
type SubmitRequest struct {
	Type    enums.FeedbackType `json:"type" validate:"required"`
	Message string             `json:"message" validate:"required,min=1,max=4000"`
}

// FeedbackDTO is the transport shape of a feedback entry.
type FeedbackDTO struct {
	ID                uuid.UUID          `json:"id"`
	Type              enums.FeedbackType `json:"type"`
	Message           string             `json:"message"`
	SubmittedByUserID uuid.UUID          `json:"submitted_by_user_id"`
	SubmittedAt       time.Time          `json:"submitted_at"`
}

// Page is one cursor page of feedback entries.
type Page struct {
	Items      []FeedbackDTO `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// Service defines the behavior needed by the feedback controller.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*FeedbackDTO, error)
	List(ctx context.Context, params pagination.Params) (*Page, error)
}

type repository interface {
	Create(ctx context.Context, entry *models.FeedbackEntry) (*models.FeedbackEntry, error)
	ListPage(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.FeedbackEntry, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a feedback service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a feedback service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("feedback repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*FeedbackDTO, error) {
	if !req.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid feedback type")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	entry, err := s.repo.Create(ctx, &models.FeedbackEntry{
		ID:                 uuid.New(),
		Type:               req.Type,
		Message:            message,
		SubmittedByUserID:  userID,
		SubmissionDateTime: time.Now().UTC(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create feedback")
	}
	return fromModel(entry), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListPage(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list feedback")
	}

	page := &Page{Items: make([]FeedbackDTO, 0, limit)}
	for i := range rows {
		if i == limit {
			last := rows[limit-1]
			page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: last.CreatedAt,
				ID:        last.ID,
			})
			break
		}
		page.Items = append(page.Items, *fromModel(&rows[i]))
	}
	return page, nil
}

func fromModel(m *models.FeedbackEntry) *FeedbackDTO {
	return &FeedbackDTO{
		ID:                m.ID,
		Type:              m.Type,
		Message:           m.Message,
		SubmittedByUserID: m.SubmittedByUserID,
		SubmittedAt:       m.SubmissionDateTime,
	}
}
