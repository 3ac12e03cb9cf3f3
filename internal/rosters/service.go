package rosters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	dbtypes "github.com/caioalmeida/mediateam-backend/pkg/db/types"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
)

// Service defines the behavior needed by the rosters controller.
type Service interface {
	Create(ctx context.Context, req CreateRosterRequest) (*RosterDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRosterRequest) (*RosterDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RosterDTO, error)
	List(ctx context.Context, from, to *time.Time) ([]RosterDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, roster *models.DutyRoster) (*models.DutyRoster, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DutyRoster, error)
	List(ctx context.Context, from, to *time.Time) ([]models.DutyRoster, error)
	Update(ctx context.Context, roster *models.DutyRoster) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type songFinder interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.PraiseSong, error)
}

type service struct {
	repo  repository
	songs songFinder
}

// ServiceParams bundles the dependencies required to build a rosters service.
type ServiceParams struct {
	Repo  repository
	Songs songFinder
}

// NewService constructs a rosters service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("rosters repository is required")
	}
	if params.Songs == nil {
		return nil, fmt.Errorf("song finder is required")
	}
	return &service{repo: params.Repo, songs: params.Songs}, nil
}

func (s *service) Create(ctx context.Context, req CreateRosterRequest) (*RosterDTO, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := requireDescription(req.Description); err != nil {
		return nil, err
	}
	assignments, err := buildAssignments(req.Assignments)
	if err != nil {
		return nil, err
	}

	roster := &models.DutyRoster{
		Date:        date,
		Description: req.Description,
		Assignments: assignments,
		SongIDs:     dbtypes.UUIDArray(normalizeSongIDs(req.SongIDs)),
	}
	created, err := s.repo.Create(ctx, roster)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create roster")
	}
	return s.hydrate(ctx, created)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRosterRequest) (*RosterDTO, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := requireDescription(req.Description); err != nil {
		return nil, err
	}
	assignments, err := buildAssignments(req.Assignments)
	if err != nil {
		return nil, err
	}

	roster, err := s.findRoster(ctx, id)
	if err != nil {
		return nil, err
	}

	roster.Date = date
	roster.Description = req.Description
	roster.Assignments = assignments
	roster.SongIDs = dbtypes.UUIDArray(normalizeSongIDs(req.SongIDs))

	if err := s.repo.Update(ctx, roster); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update roster")
	}
	return s.hydrate(ctx, roster)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RosterDTO, error) {
	roster, err := s.findRoster(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, roster)
}

func (s *service) List(ctx context.Context, from, to *time.Time) ([]RosterDTO, error) {
	list, err := s.repo.List(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rosters")
	}

	out := make([]RosterDTO, 0, len(list))
	for i := range list {
		dto, err := s.hydrate(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findRoster(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete roster")
	}
	return nil
}

func (s *service) findRoster(ctx context.Context, id uuid.UUID) (*models.DutyRoster, error) {
	roster, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "roster not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup roster")
	}
	return roster, nil
}

// hydrate resolves the roster's song id references. Deleted songs are
// silently skipped rather than failing the read.
func (s *service) hydrate(ctx context.Context, roster *models.DutyRoster) (*RosterDTO, error) {
	summaries := []SongSummary{}
	if len(roster.SongIDs) > 0 {
		songs, err := s.songs.ListByIDs(ctx, roster.SongIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hydrate songs")
		}
		byID := make(map[uuid.UUID]models.PraiseSong, len(songs))
		for _, song := range songs {
			byID[song.ID] = song
		}
		for _, id := range roster.SongIDs {
			song, ok := byID[id]
			if !ok {
				continue
			}
			summaries = append(summaries, SongSummary{
				ID:     song.ID,
				Title:  song.Title,
				Artist: song.Artist,
				Key:    song.SongKey,
			})
		}
	}
	return fromModel(roster, summaries), nil
}

func buildAssignments(inputs []AssignmentInput) (dbtypes.AssignmentList, error) {
	out := make(dbtypes.AssignmentList, 0, len(inputs))
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.UserID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("user %s is assigned more than once", in.UserID))
		}
		seen[in.UserID] = struct{}{}

		status := enums.AssignmentStatusPending
		if in.Status != nil {
			if !in.Status.IsValid() {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid assignment status")
			}
			status = *in.Status
		}
		out = append(out, dbtypes.Assignment{
			UserID:   in.UserID,
			UserName: in.UserName,
			RoleID:   in.RoleID,
			RoleName: in.RoleName,
			Status:   status,
		})
	}
	return out, nil
}

func normalizeSongIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return append([]uuid.UUID(nil), ids...)
}

func requireDescription(value string) error {
	if strings.TrimSpace(value) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	return parsed, nil
}
