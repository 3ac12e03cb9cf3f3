package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/caioalmeida/mediateam-backend/pkg/auth"
	"github.com/caioalmeida/mediateam-backend/pkg/config"
	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
	"github.com/caioalmeida/mediateam-backend/pkg/security"
)

func TestServiceLoginIssuesTokenWithRoleAndStatus(t *testing.T) {
	password := "member-secret"
	user := &models.AppUser{
		ID:           uuid.New(),
		Name:         "Pending Member",
		Email:        "pending@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleMember,
		Status:       enums.UserStatusPending,
	}
	cfg := testJWTConfig()

	svc := buildTestService(t, user, cfg)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleMember {
		t.Fatalf("expected member role claim, got %s", claims.Role)
	}
	if claims.Status != enums.UserStatusPending {
		t.Fatalf("expected pending status claim, got %s", claims.Status)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	user := &models.AppUser{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		Role:         enums.UserRoleMember,
		Status:       enums.UserStatusApproved,
	}

	svc := buildTestService(t, user, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	if err == nil {
		t.Fatalf("expected unauthorized for wrong password")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginRejectsUnknownEmail(t *testing.T) {
	svc := buildTestService(t, nil, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if err == nil {
		t.Fatalf("expected unauthorized for unknown email")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceRefreshCarriesCurrentRole(t *testing.T) {
	user := &models.AppUser{
		ID:           uuid.New(),
		Email:        "promoted@example.com",
		PasswordHash: mustHashPassword(t, "pw"),
		Role:         enums.UserRoleAdmin,
		Status:       enums.UserStatusApproved,
	}
	cfg := testJWTConfig()

	svc := buildTestService(t, user, cfg)

	// Stale token minted while the user was still a pending member.
	staleToken, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   enums.UserRoleMember,
		Status: enums.UserStatusPending,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint stale token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  staleToken,
		RefreshToken: "refresh-token",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.Role != enums.UserRoleAdmin {
		t.Fatalf("expected refreshed admin role claim, got %s", claims.Role)
	}
	if claims.Status != enums.UserStatusApproved {
		t.Fatalf("expected refreshed approved status claim, got %s", claims.Status)
	}
}

func buildTestService(t *testing.T, user *models.AppUser, cfg config.JWTConfig) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSessionManager{refreshToken: "refresh-token"},
		JWTConfig:      cfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "mediateam",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user *models.AppUser
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.AppUser, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubSessionManager struct {
	refreshToken string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "new-access-id", s.refreshToken, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}
