package rosters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	dbtypes "github.com/caioalmeida/mediateam-backend/pkg/db/types"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
)

func TestServiceCreateRejectsDoubleBooking(t *testing.T) {
	svc := buildTestService(t, &stubRepo{}, &stubSongs{})

	userID := uuid.New()
	_, err := svc.Create(context.Background(), CreateRosterRequest{
		Date:        "2024-05-05",
		Description: "Sunday morning",
		Assignments: []AssignmentInput{
			{UserID: userID, UserName: "M", RoleID: uuid.New(), RoleName: "Camera"},
			{UserID: userID, UserName: "M", RoleID: uuid.New(), RoleName: "Sound"},
		},
	})
	if err == nil {
		t.Fatalf("expected validation error for duplicate user")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateDefaultsAssignmentStatus(t *testing.T) {
	repo := &stubRepo{}
	svc := buildTestService(t, repo, &stubSongs{})

	dto, err := svc.Create(context.Background(), CreateRosterRequest{
		Date:        "2024-05-05",
		Description: "Sunday morning",
		Assignments: []AssignmentInput{
			{UserID: uuid.New(), UserName: "M", RoleID: uuid.New(), RoleName: "Camera"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(dto.Assignments) != 1 {
		t.Fatalf("expected one assignment, got %d", len(dto.Assignments))
	}
	if dto.Assignments[0].Status != enums.AssignmentStatusPending {
		t.Fatalf("expected pending status, got %s", dto.Assignments[0].Status)
	}
}

func TestServiceCreateRejectsBadDate(t *testing.T) {
	svc := buildTestService(t, &stubRepo{}, &stubSongs{})

	_, err := svc.Create(context.Background(), CreateRosterRequest{Date: "05/05/2024"})
	if err == nil {
		t.Fatalf("expected validation error for bad date")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateRequiresDescription(t *testing.T) {
	repo := &stubRepo{}
	svc := buildTestService(t, repo, &stubSongs{})

	_, err := svc.Create(context.Background(), CreateRosterRequest{Date: "2024-05-05"})
	if err == nil {
		t.Fatalf("expected validation error for missing description")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.roster != nil {
		t.Fatalf("expected nothing persisted, got %+v", repo.roster)
	}
}

func TestServiceUpdateRequiresDescription(t *testing.T) {
	roster := &models.DutyRoster{
		ID:          uuid.New(),
		Date:        mustParseDate(t, "2024-05-05"),
		Description: "Sunday morning",
	}
	svc := buildTestService(t, &stubRepo{roster: roster}, &stubSongs{})

	_, err := svc.Update(context.Background(), roster.ID, UpdateRosterRequest{Date: "2024-05-12"})
	if err == nil {
		t.Fatalf("expected validation error for missing description")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGetSkipsDeletedSongs(t *testing.T) {
	existing := models.PraiseSong{ID: uuid.New(), Title: "Living Hope", Artist: "Phil Wickham"}
	deleted := uuid.New()

	roster := &models.DutyRoster{
		ID:      uuid.New(),
		Date:    mustParseDate(t, "2024-05-05"),
		SongIDs: dbtypes.UUIDArray{existing.ID, deleted},
	}
	repo := &stubRepo{roster: roster}
	svc := buildTestService(t, repo, &stubSongs{songs: []models.PraiseSong{existing}})

	dto, err := svc.Get(context.Background(), roster.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(dto.Songs) != 1 {
		t.Fatalf("expected one hydrated song, got %d", len(dto.Songs))
	}
	if dto.Songs[0].ID != existing.ID {
		t.Fatalf("expected surviving song %s, got %s", existing.ID, dto.Songs[0].ID)
	}
}

func TestServiceGetUnknownRoster(t *testing.T) {
	svc := buildTestService(t, &stubRepo{}, &stubSongs{})

	_, err := svc.Get(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("expected not found")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceUpdateReplacesAssignmentsWholesale(t *testing.T) {
	roster := &models.DutyRoster{
		ID:   uuid.New(),
		Date: mustParseDate(t, "2024-05-05"),
		Assignments: dbtypes.AssignmentList{
			{UserID: uuid.New(), UserName: "Old", RoleID: uuid.New(), RoleName: "Camera", Status: enums.AssignmentStatusPending},
		},
	}
	repo := &stubRepo{roster: roster}
	svc := buildTestService(t, repo, &stubSongs{})

	newUser := uuid.New()
	dto, err := svc.Update(context.Background(), roster.ID, UpdateRosterRequest{
		Date:        "2024-05-12",
		Description: "Evening service",
		Assignments: []AssignmentInput{
			{UserID: newUser, UserName: "New", RoleID: uuid.New(), RoleName: "Sound"},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Date != "2024-05-12" {
		t.Fatalf("expected updated date, got %s", dto.Date)
	}
	if len(dto.Assignments) != 1 || dto.Assignments[0].UserID != newUser {
		t.Fatalf("expected assignments replaced, got %+v", dto.Assignments)
	}
}

func buildTestService(t *testing.T, repo *stubRepo, songs *stubSongs) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Songs: songs})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return parsed
}

type stubRepo struct {
	roster *models.DutyRoster
}

func (s *stubRepo) Create(ctx context.Context, roster *models.DutyRoster) (*models.DutyRoster, error) {
	roster.ID = uuid.New()
	s.roster = roster
	return roster, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.DutyRoster, error) {
	if s.roster == nil || s.roster.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.roster
	return &copied, nil
}

func (s *stubRepo) List(ctx context.Context, from, to *time.Time) ([]models.DutyRoster, error) {
	if s.roster == nil {
		return nil, nil
	}
	return []models.DutyRoster{*s.roster}, nil
}

func (s *stubRepo) Update(ctx context.Context, roster *models.DutyRoster) error {
	s.roster = roster
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.roster != nil && s.roster.ID == id {
		s.roster = nil
	}
	return nil
}

type stubSongs struct {
	songs []models.PraiseSong
}

func (s *stubSongs) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.PraiseSong, error) {
	out := make([]models.PraiseSong, 0, len(s.songs))
	for _, song := range s.songs {
		for _, id := range ids {
			if song.ID == id {
				out = append(out, song)
				break
			}
		}
	}
	return out, nil
}
