package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caioalmeida/mediateam-backend/api/middleware"
	usersvc "github.com/caioalmeida/mediateam-backend/internal/users"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
)

type testUsersService struct {
	approveFn    func(ctx context.Context, actor usersvc.Actor, userID uuid.UUID) (*usersvc.UserDTO, error)
	changeRoleFn func(ctx context.Context, actor usersvc.Actor, userID uuid.UUID, req usersvc.ChangeRoleRequest) (*usersvc.UserDTO, error)
}

func (s *testUsersService) List(ctx context.Context, status *enums.UserStatus) ([]usersvc.UserDTO, error) {
	return nil, nil
}

func (s *testUsersService) Me(ctx context.Context, userID uuid.UUID) (*usersvc.UserDTO, error) {
	return nil, nil
}

func (s *testUsersService) UpdateMe(ctx context.Context, userID uuid.UUID, req usersvc.UpdateProfileRequest) (*usersvc.UserDTO, error) {
	return nil, nil
}

func (s *testUsersService) Approve(ctx context.Context, actor usersvc.Actor, userID uuid.UUID) (*usersvc.UserDTO, error) {
	if s.approveFn != nil {
		return s.approveFn(ctx, actor, userID)
	}
	return nil, nil
}

func (s *testUsersService) ChangeRole(ctx context.Context, actor usersvc.Actor, userID uuid.UUID, req usersvc.ChangeRoleRequest) (*usersvc.UserDTO, error) {
	if s.changeRoleFn != nil {
		return s.changeRoleFn(ctx, actor, userID, req)
	}
	return nil, nil
}

func (s *testUsersService) Delete(ctx context.Context, actor usersvc.Actor, userID uuid.UUID) error {
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func authedRequest(req *http.Request, userID uuid.UUID, role enums.UserRole, status enums.UserStatus) *http.Request {
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, string(role))
	ctx = middleware.WithStatus(ctx, string(status))
	return req.WithContext(ctx)
}

func TestUsersApprovePassesActor(t *testing.T) {
	actorID := uuid.New()
	targetID := uuid.New()
	called := false
	svc := &testUsersService{
		approveFn: func(ctx context.Context, actor usersvc.Actor, userID uuid.UUID) (*usersvc.UserDTO, error) {
			called = true
			if actor.UserID != actorID {
				t.Fatalf("unexpected actor %s", actor.UserID)
			}
			if actor.Role != enums.UserRoleAdmin {
				t.Fatalf("unexpected role %s", actor.Role)
			}
			if userID != targetID {
				t.Fatalf("unexpected target %s", userID)
			}
			return &usersvc.UserDTO{ID: userID}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+targetID.String()+"/approve", nil)
	req = authedRequest(req, actorID, enums.UserRoleAdmin, enums.UserStatusApproved)
	req = addRouteParam(req, "userId", targetID.String())

	resp := httptest.NewRecorder()
	UsersApprove(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
}

func TestUsersApproveMissingUserContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+uuid.NewString()+"/approve", nil)
	req = addRouteParam(req, "userId", uuid.NewString())

	resp := httptest.NewRecorder()
	UsersApprove(&testUsersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestUsersApproveInvalidTargetID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/users/invalid/approve", nil)
	req = authedRequest(req, uuid.New(), enums.UserRoleAdmin, enums.UserStatusApproved)
	req = addRouteParam(req, "userId", "invalid")

	resp := httptest.NewRecorder()
	UsersApprove(&testUsersService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMeCapabilitiesForApprovedMember(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/me/capabilities", nil)
	req = authedRequest(req, uuid.New(), enums.UserRoleMember, enums.UserStatusApproved)

	resp := httptest.NewRecorder()
	MeCapabilities()(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data["view_rosters"] {
		t.Fatal("expected view_rosters for approved member")
	}
	if envelope.Data["manage_content"] {
		t.Fatal("member should not manage content")
	}
}

func TestMeCapabilitiesForPendingUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/me/capabilities", nil)
	req = authedRequest(req, uuid.New(), enums.UserRoleMember, enums.UserStatusPending)

	resp := httptest.NewRecorder()
	MeCapabilities()(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	for key, value := range envelope.Data {
		if value {
			t.Fatalf("pending user should have no capabilities, got %s", key)
		}
	}
}
