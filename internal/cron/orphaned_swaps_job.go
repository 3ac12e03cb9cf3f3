package cron

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/internal/rosters"
	"github.com/caioalmeida/mediateam-backend/internal/swaps"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// OrphanedSwapsJobParams configure the orphaned swap cleanup job.
type OrphanedSwapsJobParams struct {
	Logger *logger.Logger
	DB     txRunner
}

// NewOrphanedSwapsJob builds the job that rejects pending swap requests
// whose original or target roster was deleted. Readers already treat these
// requests as resolved; this job makes that status durable and frees the
// member's slot on a surviving source roster.
func NewOrphanedSwapsJob(params OrphanedSwapsJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	return &orphanedSwapsJob{
		logg: params.Logger,
		db:   params.DB,
	}, nil
}

type orphanedSwapsJob struct {
	logg *logger.Logger
	db   txRunner
}

func (j *orphanedSwapsJob) Name() string { return "orphaned-swaps-cleanup" }

func (j *orphanedSwapsJob) Run(ctx context.Context) error {
	var rejected int
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		swapRepo := swaps.NewRepository(tx)
		rosterRepo := rosters.NewRepository(tx)

		pending, err := swapRepo.ListByStatus(ctx, enums.SwapRequestStatusPending)
		if err != nil {
			return fmt.Errorf("list pending requests: %w", err)
		}

		for i := range pending {
			request := &pending[i]

			source, err := rosterRepo.FindByID(ctx, request.OriginalRosterID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lookup roster %s: %w", request.OriginalRosterID, err)
			}
			targetMissing := false
			if _, err := rosterRepo.FindByID(ctx, request.TargetRosterID); err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("lookup roster %s: %w", request.TargetRosterID, err)
				}
				targetMissing = true
			}
			if source != nil && !targetMissing {
				continue
			}

			// When the source roster survives it still carries the member's
			// swap_requested slot; reset it so they can request again.
			if source != nil {
				if assignment, ok := source.Assignments.Find(request.UserID); ok &&
					assignment.Status == enums.AssignmentStatusSwapRequested {
					reset := source.Assignments.WithStatus(request.UserID, enums.AssignmentStatusPending)
					if err := rosterRepo.UpdateAssignments(ctx, source.ID, reset); err != nil {
						return fmt.Errorf("reset assignment on roster %s: %w", source.ID, err)
					}
				}
			}

			if err := swapRepo.UpdateStatus(ctx, request.ID, enums.SwapRequestStatusRejected); err != nil {
				return fmt.Errorf("reject request %s: %w", request.ID, err)
			}
			rejected++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("orphaned swaps cleanup: %w", err)
	}

	logCtx := j.logg.WithField(ctx, "requests_rejected", rejected)
	j.logg.Info(logCtx, "orphaned swap cleanup complete")
	return nil
}
