package roles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db"
	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
)

// RoleRequest is the payload for creating or updating a duty role.
type RoleRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=80"`
	Description string `json:"description"`
}

// RoleDTO is the transport shape of a duty role.
type RoleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Service defines the behavior needed by the roles controller.
type Service interface {
	Create(ctx context.Context, req RoleRequest) (*RoleDTO, error)
	Update(ctx context.Context, id uuid.UUID, req RoleRequest) (*RoleDTO, error)
	List(ctx context.Context) ([]RoleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, role *models.DutyRole) (*models.DutyRole, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DutyRole, error)
	List(ctx context.Context) ([]models.DutyRole, error)
	Update(ctx context.Context, role *models.DutyRole) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a roles service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a roles service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("roles repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, req RoleRequest) (*RoleDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	role, err := s.repo.Create(ctx, &models.DutyRole{
		Name:        name,
		Description: req.Description,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "uq_duty_roles_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a role with that name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create role")
	}
	return fromModel(role), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req RoleRequest) (*RoleDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	role, err := s.findRole(ctx, id)
	if err != nil {
		return nil, err
	}

	role.Name = name
	role.Description = req.Description
	if err := s.repo.Update(ctx, role); err != nil {
		if db.IsUniqueViolation(err, "uq_duty_roles_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a role with that name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update role")
	}
	return fromModel(role), nil
}

func (s *service) List(ctx context.Context) ([]RoleDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list roles")
	}
	out := make([]RoleDTO, 0, len(list))
	for i := range list {
		out = append(out, *fromModel(&list[i]))
	}
	return out, nil
}

// Delete removes the role. Roster assignments keep their role name snapshot,
// so existing rosters are unaffected.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findRole(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete role")
	}
	return nil
}

func (s *service) findRole(ctx context.Context, id uuid.UUID) (*models.DutyRole, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "role not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup role")
	}
	return role, nil
}

func fromModel(m *models.DutyRole) *RoleDTO {
	return &RoleDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
