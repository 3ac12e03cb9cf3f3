package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/caioalmeida/mediateam-backend/internal/auth"
	"github.com/caioalmeida/mediateam-backend/internal/events"
	"github.com/caioalmeida/mediateam-backend/internal/feedback"
	"github.com/caioalmeida/mediateam-backend/internal/roles"
	"github.com/caioalmeida/mediateam-backend/internal/rosters"
	"github.com/caioalmeida/mediateam-backend/internal/songs"
	"github.com/caioalmeida/mediateam-backend/internal/swaps"
	"github.com/caioalmeida/mediateam-backend/internal/users"
	pkgAuth "github.com/caioalmeida/mediateam-backend/pkg/auth"
	"github.com/caioalmeida/mediateam-backend/pkg/auth/session"
	"github.com/caioalmeida/mediateam-backend/pkg/config"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
	"github.com/caioalmeida/mediateam-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error { return nil }

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

type stubUserService struct{}

func (stubUserService) List(ctx context.Context, status *enums.UserStatus) ([]users.UserDTO, error) {
	return nil, nil
}

func (stubUserService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUserService) UpdateMe(ctx context.Context, userID uuid.UUID, req users.UpdateProfileRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUserService) Approve(ctx context.Context, actor users.Actor, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUserService) ChangeRole(ctx context.Context, actor users.Actor, userID uuid.UUID, req users.ChangeRoleRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubUserService) Delete(ctx context.Context, actor users.Actor, userID uuid.UUID) error {
	return nil
}

type stubRosterService struct{}

func (stubRosterService) Create(ctx context.Context, req rosters.CreateRosterRequest) (*rosters.RosterDTO, error) {
	return &rosters.RosterDTO{}, nil
}

func (stubRosterService) Update(ctx context.Context, id uuid.UUID, req rosters.UpdateRosterRequest) (*rosters.RosterDTO, error) {
	return &rosters.RosterDTO{}, nil
}

func (stubRosterService) Get(ctx context.Context, id uuid.UUID) (*rosters.RosterDTO, error) {
	return &rosters.RosterDTO{}, nil
}

func (stubRosterService) List(ctx context.Context, from, to *time.Time) ([]rosters.RosterDTO, error) {
	return nil, nil
}

func (stubRosterService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubSwapService struct{}

func (stubSwapService) Request(ctx context.Context, requester swaps.Requester, req swaps.CreateSwapRequest) (*swaps.SwapRequestDTO, error) {
	return &swaps.SwapRequestDTO{}, nil
}

func (stubSwapService) Approve(ctx context.Context, actor swaps.Actor, requestID uuid.UUID) (*swaps.SwapRequestDTO, error) {
	return &swaps.SwapRequestDTO{}, nil
}

func (stubSwapService) Reject(ctx context.Context, actor swaps.Actor, requestID uuid.UUID) (*swaps.SwapRequestDTO, error) {
	return &swaps.SwapRequestDTO{}, nil
}

func (stubSwapService) ListPending(ctx context.Context, actor swaps.Actor) ([]swaps.SwapRequestDTO, error) {
	return nil, nil
}

func (stubSwapService) ListMine(ctx context.Context, userID uuid.UUID) ([]swaps.SwapRequestDTO, error) {
	return nil, nil
}

type stubSongService struct{}

func (stubSongService) Create(ctx context.Context, req songs.SongRequest) (*songs.SongDTO, error) {
	return &songs.SongDTO{}, nil
}

func (stubSongService) Update(ctx context.Context, id uuid.UUID, req songs.SongRequest) (*songs.SongDTO, error) {
	return &songs.SongDTO{}, nil
}

func (stubSongService) Get(ctx context.Context, id uuid.UUID) (*songs.SongDTO, error) {
	return &songs.SongDTO{}, nil
}

func (stubSongService) List(ctx context.Context, search string) ([]songs.SongDTO, error) {
	return nil, nil
}

func (stubSongService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubRoleService struct{}

func (stubRoleService) Create(ctx context.Context, req roles.RoleRequest) (*roles.RoleDTO, error) {
	return &roles.RoleDTO{}, nil
}

func (stubRoleService) Update(ctx context.Context, id uuid.UUID, req roles.RoleRequest) (*roles.RoleDTO, error) {
	return &roles.RoleDTO{}, nil
}

func (stubRoleService) List(ctx context.Context) ([]roles.RoleDTO, error) { return nil, nil }

func (stubRoleService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubEventService struct{}

func (stubEventService) Create(ctx context.Context, req events.EventRequest) (*events.EventDTO, error) {
	return &events.EventDTO{}, nil
}

func (stubEventService) Update(ctx context.Context, id uuid.UUID, req events.EventRequest) (*events.EventDTO, error) {
	return &events.EventDTO{}, nil
}

func (stubEventService) List(ctx context.Context, from, to *time.Time) ([]events.EventDTO, error) {
	return nil, nil
}

func (stubEventService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubFeedbackService struct{}

func (stubFeedbackService) Submit(ctx context.Context, userID uuid.UUID, req feedback.SubmitRequest) (*feedback.FeedbackDTO, error) {
	return &feedback.FeedbackDTO{}, nil
}

func (stubFeedbackService) List(ctx context.Context, params pagination.Params) (*feedback.Page, error) {
	return &feedback.Page{}, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "test", Port: "8080"},
		JWT:  config.JWTConfig{Secret: "secret", Issuer: "mediateam", ExpirationMinutes: 30},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	cfg := testRouterConfig()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	handler := NewRouter(Deps{
		Cfg:             cfg,
		Logg:            logg,
		DB:              stubPinger{},
		SessionManager:  stubSessionChecker{},
		AuthService:     stubAuthService{},
		RegisterService: stubRegisterService{},
		UserService:     stubUserService{},
		RosterService:   stubRosterService{},
		SwapService:     stubSwapService{},
		SongService:     stubSongService{},
		RoleService:     stubRoleService{},
		EventService:    stubEventService{},
		FeedbackService: stubFeedbackService{},
	})
	return handler, cfg
}

func mintToken(t *testing.T, cfg *config.Config, role enums.UserRole, status enums.UserStatus) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		Status: status,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func doRequest(handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestRouterHealthAndPingArePublic(t *testing.T) {
	handler, _ := newTestRouter(t)

	if resp := doRequest(handler, http.MethodGet, "/health/live", "", ""); resp.Code != http.StatusOK {
		t.Fatalf("health live: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodGet, "/ping", "", ""); resp.Code != http.StatusOK {
		t.Fatalf("ping: expected 200 got %d", resp.Code)
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	handler, _ := newTestRouter(t)

	if resp := doRequest(handler, http.MethodGet, "/v1/rosters", "", ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterPendingUserCanOnlySeeSelf(t *testing.T) {
	handler, cfg := newTestRouter(t)
	token := mintToken(t, cfg, enums.UserRoleMember, enums.UserStatusPending)

	if resp := doRequest(handler, http.MethodGet, "/v1/me", token, ""); resp.Code != http.StatusOK {
		t.Fatalf("me: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodGet, "/v1/rosters", token, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("rosters: expected 403 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodPost, "/v1/feedback", token, `{"type":"suggestion","message":"hi"}`); resp.Code != http.StatusForbidden {
		t.Fatalf("feedback: expected 403 got %d", resp.Code)
	}
}

func TestRouterMemberCannotManageContent(t *testing.T) {
	handler, cfg := newTestRouter(t)
	token := mintToken(t, cfg, enums.UserRoleMember, enums.UserStatusApproved)

	if resp := doRequest(handler, http.MethodGet, "/v1/rosters", token, ""); resp.Code != http.StatusOK {
		t.Fatalf("list rosters: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodPost, "/v1/rosters", token, `{"date":"2026-01-04"}`); resp.Code != http.StatusForbidden {
		t.Fatalf("create roster: expected 403 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodGet, "/v1/swap-requests/pending", token, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("pending swaps: expected 403 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodGet, "/v1/users", token, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("user list: expected 403 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodGet, "/v1/feedback", token, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("feedback list: expected 403 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodPost, "/v1/feedback", token, `{"type":"suggestion","message":"more rehearsal time"}`); resp.Code != http.StatusCreated {
		t.Fatalf("feedback submit: expected 201 got %d", resp.Code)
	}
}

func TestRouterAdminCanApproveUsersButNotChangeRoles(t *testing.T) {
	handler, cfg := newTestRouter(t)
	token := mintToken(t, cfg, enums.UserRoleAdmin, enums.UserStatusApproved)
	targetID := uuid.NewString()

	if resp := doRequest(handler, http.MethodPost, "/v1/users/"+targetID+"/approve", token, ""); resp.Code != http.StatusOK {
		t.Fatalf("approve user: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodPut, "/v1/users/"+targetID+"/role", token, `{"role":"admin"}`); resp.Code != http.StatusForbidden {
		t.Fatalf("change role: expected 403 got %d", resp.Code)
	}
	if resp := doRequest(handler, http.MethodDelete, "/v1/users/"+targetID, token, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("delete user: expected 403 got %d", resp.Code)
	}
}

func TestRouterModeratorHasFullAccess(t *testing.T) {
	handler, cfg := newTestRouter(t)
	token := mintToken(t, cfg, enums.UserRoleModerator, enums.UserStatusApproved)
	targetID := uuid.NewString()

	if resp := doRequest(handler, http.MethodPut, "/v1/users/"+targetID+"/role", token, `{"role":"admin"}`); resp.Code != http.StatusOK {
		t.Fatalf("change role: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if resp := doRequest(handler, http.MethodDelete, "/v1/users/"+targetID, token, ""); resp.Code != http.StatusOK {
		t.Fatalf("delete user: expected 200 got %d", resp.Code)
	}
}
