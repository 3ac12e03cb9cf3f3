package swaps

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	dbtypes "github.com/caioalmeida/mediateam-backend/pkg/db/types"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
)

func TestServiceRequestMarksAssignmentAndCreatesRequest(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	dto, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)
	require.Equal(t, enums.SwapRequestStatusPending, dto.Status)
	require.Equal(t, "Camera", dto.RoleName)
	require.Equal(t, "Maria", dto.UserName)
	require.Equal(t, "2024-05-05", dto.OriginalRosterDate)

	reloaded := h.loadRoster(source.ID)
	assignment, ok := reloaded.Assignments.Find(member.UserID)
	require.True(t, ok)
	require.Equal(t, enums.AssignmentStatusSwapRequested, assignment.Status)
}

func TestServiceRequestRejectsSelfSwap(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})

	_, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   source.ID,
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceRequestRequiresOwnAssignment(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", nil)
	target := h.seedRoster("2024-05-12", nil)

	_, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceRequestRejectsDoubleBookedTarget(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", dbtypes.AssignmentList{
		h.assignment(member, "Sound", enums.AssignmentStatusConfirmed),
	})

	_, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	requireCode(t, err, pkgerrors.CodeConflict)

	// The failed request must not have touched the source assignment.
	reloaded := h.loadRoster(source.ID)
	assignment, _ := reloaded.Assignments.Find(member.UserID)
	require.Equal(t, enums.AssignmentStatusPending, assignment.Status)
}

func TestServiceRequestBlocksSecondOpenRequest(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)
	other := h.seedRoster("2024-05-19", nil)

	_, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	_, err = h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   other.ID,
	})
	requireCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServiceApproveMovesAssignmentAtomically(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	request, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	approver := Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	approved, err := h.svc.Approve(h.ctx, approver, request.ID)
	require.NoError(t, err)
	require.Equal(t, enums.SwapRequestStatusApproved, approved.Status)

	sourceAfter := h.loadRoster(source.ID)
	require.False(t, sourceAfter.Assignments.HasUser(member.UserID))

	targetAfter := h.loadRoster(target.ID)
	moved, ok := targetAfter.Assignments.Find(member.UserID)
	require.True(t, ok)
	require.Equal(t, enums.AssignmentStatusConfirmed, moved.Status)
	require.Equal(t, "Camera", moved.RoleName)

	stored := h.loadRequest(request.ID)
	require.Equal(t, enums.SwapRequestStatusApproved, stored.Status)
}

func TestServiceApproveForbiddenForMembers(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	request, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	_, err = h.svc.Approve(h.ctx, Actor{UserID: member.UserID, Role: enums.UserRoleMember}, request.ID)
	requireCode(t, err, pkgerrors.CodeForbidden)

	// Nothing may have moved.
	sourceAfter := h.loadRoster(source.ID)
	assignment, ok := sourceAfter.Assignments.Find(member.UserID)
	require.True(t, ok)
	require.Equal(t, enums.AssignmentStatusSwapRequested, assignment.Status)
	require.Equal(t, enums.SwapRequestStatusPending, h.loadRequest(request.ID).Status)
}

func TestServiceApproveRefusesTerminalRequest(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	request, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	approver := Actor{UserID: uuid.New(), Role: enums.UserRoleModerator}
	_, err = h.svc.Approve(h.ctx, approver, request.ID)
	require.NoError(t, err)

	targetBefore := h.loadRoster(target.ID)

	_, err = h.svc.Approve(h.ctx, approver, request.ID)
	requireCode(t, err, pkgerrors.CodeStateConflict)

	// A refused re-approval must not mutate the rosters a second time.
	targetAfter := h.loadRoster(target.ID)
	require.Equal(t, len(targetBefore.Assignments), len(targetAfter.Assignments))
}

func TestServiceApproveConflictsWhenTargetGotBooked(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	request, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	// An approver edits the target roster and books the member directly
	// before reviewing the request.
	h.replaceAssignments(target.ID, dbtypes.AssignmentList{
		h.assignment(member, "Sound", enums.AssignmentStatusConfirmed),
	})

	approver := Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	_, err = h.svc.Approve(h.ctx, approver, request.ID)
	requireCode(t, err, pkgerrors.CodeConflict)

	// The request stays pending and the source assignment is untouched.
	require.Equal(t, enums.SwapRequestStatusPending, h.loadRequest(request.ID).Status)
	sourceAfter := h.loadRoster(source.ID)
	assignment, _ := sourceAfter.Assignments.Find(member.UserID)
	require.Equal(t, enums.AssignmentStatusSwapRequested, assignment.Status)
}

func TestServiceRejectResetsAssignment(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	request, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	approver := Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	rejected, err := h.svc.Reject(h.ctx, approver, request.ID)
	require.NoError(t, err)
	require.Equal(t, enums.SwapRequestStatusRejected, rejected.Status)

	sourceAfter := h.loadRoster(source.ID)
	assignment, ok := sourceAfter.Assignments.Find(member.UserID)
	require.True(t, ok)
	require.Equal(t, enums.AssignmentStatusPending, assignment.Status)

	targetAfter := h.loadRoster(target.ID)
	require.Empty(t, targetAfter.Assignments)
}

func TestServiceRejectForbiddenForMembers(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	request, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	_, err = h.svc.Reject(h.ctx, Actor{UserID: member.UserID, Role: enums.UserRoleMember}, request.ID)
	requireCode(t, err, pkgerrors.CodeForbidden)
}

func TestServiceListPendingSkipsOrphanedRequests(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	_, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	h.deleteRoster(target.ID)

	approver := Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	pending, err := h.svc.ListPending(h.ctx, approver)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestServiceListMineShowsOrphanedAsRejected(t *testing.T) {
	h := newTestHarness(t)
	member := h.newMember("Maria")
	source := h.seedRoster("2024-05-05", dbtypes.AssignmentList{
		h.assignment(member, "Camera", enums.AssignmentStatusPending),
	})
	target := h.seedRoster("2024-05-12", nil)

	_, err := h.svc.Request(h.ctx, member, CreateSwapRequest{
		OriginalRosterID: source.ID,
		TargetRosterID:   target.ID,
	})
	require.NoError(t, err)

	h.deleteRoster(target.ID)

	mine, err := h.svc.ListMine(h.ctx, member.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, enums.SwapRequestStatusRejected, mine[0].Status)
}

type testHarness struct {
	t    *testing.T
	ctx  context.Context
	conn *gorm.DB
	svc  Service
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	dsn := "file:swaps_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	rosterTable := `
CREATE TABLE IF NOT EXISTS duty_rosters (
  id TEXT PRIMARY KEY,
  date DATETIME NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  assignments TEXT NOT NULL DEFAULT '[]',
  song_ids TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME
);`
	swapTable := `
CREATE TABLE IF NOT EXISTS swap_requests (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  user_name TEXT NOT NULL,
  original_roster_id TEXT NOT NULL,
  original_roster_date DATETIME NOT NULL,
  target_roster_id TEXT NOT NULL,
  target_roster_desc TEXT NOT NULL DEFAULT '',
  role_id TEXT NOT NULL,
  role_name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(rosterTable).Error)
	require.NoError(t, conn.Exec(swapTable).Error)

	svc, err := NewService(ServiceParams{DB: &testRunner{conn: conn}})
	require.NoError(t, err)

	return &testHarness{
		t:    t,
		ctx:  context.Background(),
		conn: conn,
		svc:  svc,
	}
}

func (h *testHarness) newMember(name string) Requester {
	return Requester{UserID: uuid.New(), UserName: name}
}

func (h *testHarness) assignment(member Requester, roleName string, status enums.AssignmentStatus) dbtypes.Assignment {
	return dbtypes.Assignment{
		UserID:   member.UserID,
		UserName: member.UserName,
		RoleID:   uuid.New(),
		RoleName: roleName,
		Status:   status,
	}
}

func (h *testHarness) seedRoster(date string, assignments dbtypes.AssignmentList) *models.DutyRoster {
	h.t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(h.t, err)
	if assignments == nil {
		assignments = dbtypes.AssignmentList{}
	}
	roster := &models.DutyRoster{
		ID:          uuid.New(),
		Date:        parsed,
		Description: "Service " + date,
		Assignments: assignments,
		SongIDs:     dbtypes.UUIDArray{},
	}
	require.NoError(h.t, h.conn.Create(roster).Error)
	return roster
}

func (h *testHarness) loadRoster(id uuid.UUID) *models.DutyRoster {
	h.t.Helper()
	var roster models.DutyRoster
	require.NoError(h.t, h.conn.First(&roster, "id = ?", id).Error)
	return &roster
}

func (h *testHarness) loadRequest(id uuid.UUID) *models.SwapRequest {
	h.t.Helper()
	var req models.SwapRequest
	require.NoError(h.t, h.conn.First(&req, "id = ?", id).Error)
	return &req
}

func (h *testHarness) replaceAssignments(rosterID uuid.UUID, assignments dbtypes.AssignmentList) {
	h.t.Helper()
	err := h.conn.Model(&models.DutyRoster{}).
		Where("id = ?", rosterID).
		UpdateColumn("assignments", assignments).Error
	require.NoError(h.t, err)
}

func (h *testHarness) deleteRoster(id uuid.UUID) {
	h.t.Helper()
	require.NoError(h.t, h.conn.Where("id = ?", id).Delete(&models.DutyRoster{}).Error)
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	require.Equal(t, code, typed.Code())
}

type testRunner struct {
	conn *gorm.DB
}

func (r *testRunner) DB() *gorm.DB {
	return r.conn
}

func (r *testRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.conn.WithContext(ctx).Transaction(fn)
}
