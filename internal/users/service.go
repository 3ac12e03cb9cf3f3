package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
)

// Actor identifies who is performing an operation, as resolved from the access token.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Service defines the behavior needed by the users controller.
type Service interface {
	List(ctx context.Context, status *enums.UserStatus) ([]UserDTO, error)
	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
	Approve(ctx context.Context, actor Actor, userID uuid.UUID) (*UserDTO, error)
	ChangeRole(ctx context.Context, actor Actor, userID uuid.UUID, req ChangeRoleRequest) (*UserDTO, error)
	Delete(ctx context.Context, actor Actor, userID uuid.UUID) error
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.AppUser, error)
	List(ctx context.Context, status *enums.UserStatus) ([]models.AppUser, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) error
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) List(ctx context.Context, status *enums.UserStatus) ([]UserDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	list, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return FromModels(list), nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) UpdateMe(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateProfile(ctx, user.ID, name, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	user.Name = name
	user.LastProfileUpdate = &now
	return FromModel(user), nil
}

func (s *service) Approve(ctx context.Context, actor Actor, userID uuid.UUID) (*UserDTO, error) {
	if !actor.Role.IsApprover() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "approver role required")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == enums.UserStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "user is already approved")
	}

	if err := s.repo.UpdateStatus(ctx, user.ID, enums.UserStatusApproved); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve user")
	}

	user.Status = enums.UserStatusApproved
	return FromModel(user), nil
}

func (s *service) ChangeRole(ctx context.Context, actor Actor, userID uuid.UUID, req ChangeRoleRequest) (*UserDTO, error) {
	if err := requireModerator(actor); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	// A moderator cannot strip their own moderator role.
	if actor.UserID == userID && req.Role != enums.UserRoleModerator {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot remove your own moderator role")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, user.ID, req.Role); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "change role")
	}

	user.Role = req.Role
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, userID uuid.UUID) error {
	if err := requireModerator(actor); err != nil {
		return err
	}
	if actor.UserID == userID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete your own profile")
	}

	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.AppUser, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}

func requireModerator(actor Actor) error {
	if actor.Role != enums.UserRoleModerator {
		return pkgerrors.New(pkgerrors.CodeForbidden, "moderator role required")
	}
	return nil
}
