package swaps

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/internal/rosters"
	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	dbtypes "github.com/caioalmeida/mediateam-backend/pkg/db/types"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
)

// Requester identifies the member filing a swap request.
type Requester struct {
	UserID   uuid.UUID
	UserName string
}

// Actor identifies who is reviewing a request.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Service enforces the swap request state machine. Approval is the one
// operation here that mutates multiple rows; it always runs as a single
// transaction so the two rosters and the request move together or not at all.
type Service interface {
	Request(ctx context.Context, requester Requester, req CreateSwapRequest) (*SwapRequestDTO, error)
	Approve(ctx context.Context, actor Actor, requestID uuid.UUID) (*SwapRequestDTO, error)
	Reject(ctx context.Context, actor Actor, requestID uuid.UUID) (*SwapRequestDTO, error)
	ListPending(ctx context.Context, actor Actor) ([]SwapRequestDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]SwapRequestDTO, error)
}

type txRunner interface {
	DB() *gorm.DB
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db txRunner
}

// ServiceParams bundles the dependencies required to build a swaps service.
type ServiceParams struct {
	DB txRunner
}

// NewService constructs a swap workflow service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

func (s *service) Request(ctx context.Context, requester Requester, req CreateSwapRequest) (*SwapRequestDTO, error) {
	if req.OriginalRosterID == req.TargetRosterID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target roster must differ from the original")
	}

	var created *models.SwapRequest
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		rosterRepo := rosters.NewRepository(tx)
		swapRepo := NewRepository(tx)

		source, err := findRoster(ctx, rosterRepo, req.OriginalRosterID, "original roster not found")
		if err != nil {
			return err
		}
		target, err := findRoster(ctx, rosterRepo, req.TargetRosterID, "target roster not found")
		if err != nil {
			return err
		}

		assignment, ok := source.Assignments.Find(requester.UserID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "you are not assigned to the original roster")
		}
		if assignment.Status == enums.AssignmentStatusSwapRequested {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "a swap is already requested for this assignment")
		}
		if assignment.Status != enums.AssignmentStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("assignment in status %s cannot be swapped", assignment.Status))
		}
		if target.Assignments.HasUser(requester.UserID) {
			return pkgerrors.New(pkgerrors.CodeConflict, "you are already assigned to the target roster")
		}

		open, err := swapRepo.HasPendingForUserAndRoster(ctx, requester.UserID, source.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check open requests")
		}
		if open {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "a pending request already exists for this roster")
		}

		updated := source.Assignments.WithStatus(requester.UserID, enums.AssignmentStatusSwapRequested)
		if err := rosterRepo.UpdateAssignments(ctx, source.ID, updated); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark assignment swap_requested")
		}

		userName := requester.UserName
		if userName == "" {
			userName = assignment.UserName
		}
		created, err = swapRepo.Create(ctx, &models.SwapRequest{
			ID:                 uuid.New(),
			UserID:             requester.UserID,
			UserName:           userName,
			OriginalRosterID:   source.ID,
			OriginalRosterDate: source.Date,
			TargetRosterID:     target.ID,
			TargetRosterDesc:   target.Description,
			RoleID:             assignment.RoleID,
			RoleName:           assignment.RoleName,
			Status:             enums.SwapRequestStatusPending,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create swap request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromModel(created), nil
}

func (s *service) Approve(ctx context.Context, actor Actor, requestID uuid.UUID) (*SwapRequestDTO, error) {
	if !actor.Role.IsApprover() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "approver role required")
	}

	var approved *models.SwapRequest
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		rosterRepo := rosters.NewRepository(tx)
		swapRepo := NewRepository(tx)

		request, err := findRequest(ctx, swapRepo, requestID)
		if err != nil {
			return err
		}
		if request.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("request is already %s", request.Status))
		}

		source, err := findRosterOrphanAware(ctx, rosterRepo, request.OriginalRosterID)
		if err != nil {
			return err
		}
		target, err := findRosterOrphanAware(ctx, rosterRepo, request.TargetRosterID)
		if err != nil {
			return err
		}

		assignment, ok := source.Assignments.Find(request.UserID)
		if !ok || assignment.Status != enums.AssignmentStatusSwapRequested {
			return pkgerrors.New(pkgerrors.CodeConflict, "the original roster changed since the request was filed")
		}
		if target.Assignments.HasUser(request.UserID) {
			return pkgerrors.New(pkgerrors.CodeConflict, "member is already assigned to the target roster")
		}

		moved := dbtypes.Assignment{
			UserID:   assignment.UserID,
			UserName: assignment.UserName,
			RoleID:   assignment.RoleID,
			RoleName: assignment.RoleName,
			Status:   enums.AssignmentStatusConfirmed,
		}

		if err := rosterRepo.UpdateAssignments(ctx, source.ID, source.Assignments.Without(request.UserID)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove assignment from original roster")
		}
		if err := rosterRepo.UpdateAssignments(ctx, target.ID, target.Assignments.Append(moved)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append assignment to target roster")
		}
		if err := swapRepo.UpdateStatus(ctx, request.ID, enums.SwapRequestStatusApproved); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark request approved")
		}

		request.Status = enums.SwapRequestStatusApproved
		approved = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromModel(approved), nil
}

func (s *service) Reject(ctx context.Context, actor Actor, requestID uuid.UUID) (*SwapRequestDTO, error) {
	if !actor.Role.IsApprover() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "approver role required")
	}

	var rejected *models.SwapRequest
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		rosterRepo := rosters.NewRepository(tx)
		swapRepo := NewRepository(tx)

		request, err := findRequest(ctx, swapRepo, requestID)
		if err != nil {
			return err
		}
		if request.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("request is already %s", request.Status))
		}

		// Reset the assignment when the roster still has it in the
		// requested state; a deleted or edited roster just means there is
		// nothing left to reset.
		source, err := rosterRepo.FindByID(ctx, request.OriginalRosterID)
		if err == nil {
			if assignment, ok := source.Assignments.Find(request.UserID); ok &&
				assignment.Status == enums.AssignmentStatusSwapRequested {
				reset := source.Assignments.WithStatus(request.UserID, enums.AssignmentStatusPending)
				if err := rosterRepo.UpdateAssignments(ctx, source.ID, reset); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reset assignment to pending")
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup original roster")
		}

		if err := swapRepo.UpdateStatus(ctx, request.ID, enums.SwapRequestStatusRejected); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark request rejected")
		}

		request.Status = enums.SwapRequestStatusRejected
		rejected = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fromModel(rejected), nil
}

func (s *service) ListPending(ctx context.Context, actor Actor) ([]SwapRequestDTO, error) {
	if !actor.Role.IsApprover() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "approver role required")
	}

	swapRepo := NewRepository(s.db.DB())
	rosterRepo := rosters.NewRepository(s.db.DB())

	list, err := swapRepo.ListByStatus(ctx, enums.SwapRequestStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pending requests")
	}

	// Requests whose rosters were deleted are dead; the cleanup job will
	// reject them, so reviewers never see them.
	out := make([]SwapRequestDTO, 0, len(list))
	for i := range list {
		orphaned, err := isOrphaned(ctx, rosterRepo, &list[i])
		if err != nil {
			return nil, err
		}
		if orphaned {
			continue
		}
		out = append(out, *fromModel(&list[i]))
	}
	return out, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]SwapRequestDTO, error) {
	swapRepo := NewRepository(s.db.DB())
	rosterRepo := rosters.NewRepository(s.db.DB())

	list, err := swapRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list requests")
	}

	out := fromModels(list)
	for i := range out {
		if out[i].Status != enums.SwapRequestStatusPending {
			continue
		}
		orphaned, err := isOrphaned(ctx, rosterRepo, &list[i])
		if err != nil {
			return nil, err
		}
		if orphaned {
			out[i].Status = enums.SwapRequestStatusRejected
		}
	}
	return out, nil
}

type rosterFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.DutyRoster, error)
}

func isOrphaned(ctx context.Context, repo rosterFinder, request *models.SwapRequest) (bool, error) {
	for _, id := range []uuid.UUID{request.OriginalRosterID, request.TargetRosterID} {
		if _, err := repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return true, nil
			}
			return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup roster")
		}
	}
	return false, nil
}

func findRoster(ctx context.Context, repo rosterFinder, id uuid.UUID, notFoundMsg string) (*models.DutyRoster, error) {
	roster, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup roster")
	}
	return roster, nil
}

func findRosterOrphanAware(ctx context.Context, repo rosterFinder, id uuid.UUID) (*models.DutyRoster, error) {
	roster, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "request references a deleted roster")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup roster")
	}
	return roster, nil
}

func findRequest(ctx context.Context, repo *Repository, id uuid.UUID) (*models.SwapRequest, error) {
	request, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "swap request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup swap request")
	}
	return request, nil
}
