package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/pkg/config"
	"github.com/caioalmeida/mediateam-backend/pkg/db/models"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	"github.com/caioalmeida/mediateam-backend/pkg/security"
)

type bootstrapTestRunner struct {
	conn *gorm.DB
}

func (r *bootstrapTestRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.conn.WithContext(ctx).Transaction(fn)
}

func newBootstrapTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:bootstrap_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE app_users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		status TEXT NOT NULL DEFAULT 'pending',
		last_profile_update DATETIME,
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	return conn
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestEnsureBootstrapModeratorCreatesAccount(t *testing.T) {
	conn := newBootstrapTestDB(t)
	runner := &bootstrapTestRunner{conn: conn}

	cfg := config.BootstrapConfig{
		ModeratorName:     "First Moderator",
		ModeratorEmail:    "Mod@Example.com",
		ModeratorPassword: "super-secret-pw",
	}

	require.NoError(t, EnsureBootstrapModerator(context.Background(), runner, cfg, testPasswordConfig(), nil))

	var user models.AppUser
	require.NoError(t, conn.First(&user, "email = ?", "mod@example.com").Error)
	require.Equal(t, enums.UserRoleModerator, user.Role)
	require.Equal(t, enums.UserStatusApproved, user.Status)

	ok, err := security.VerifyPassword("super-secret-pw", user.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEnsureBootstrapModeratorIsIdempotent(t *testing.T) {
	conn := newBootstrapTestDB(t)
	runner := &bootstrapTestRunner{conn: conn}

	cfg := config.BootstrapConfig{
		ModeratorName:     "First Moderator",
		ModeratorEmail:    "mod@example.com",
		ModeratorPassword: "super-secret-pw",
	}

	require.NoError(t, EnsureBootstrapModerator(context.Background(), runner, cfg, testPasswordConfig(), nil))
	require.NoError(t, EnsureBootstrapModerator(context.Background(), runner, cfg, testPasswordConfig(), nil))

	var count int64
	require.NoError(t, conn.Model(&models.AppUser{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestEnsureBootstrapModeratorSkipsWhenUnconfigured(t *testing.T) {
	conn := newBootstrapTestDB(t)
	runner := &bootstrapTestRunner{conn: conn}

	require.NoError(t, EnsureBootstrapModerator(context.Background(), runner, config.BootstrapConfig{}, testPasswordConfig(), nil))

	var count int64
	require.NoError(t, conn.Model(&models.AppUser{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestEnsureBootstrapModeratorRequiresPassword(t *testing.T) {
	conn := newBootstrapTestDB(t)
	runner := &bootstrapTestRunner{conn: conn}

	err := EnsureBootstrapModerator(context.Background(), runner, config.BootstrapConfig{
		ModeratorEmail: "mod@example.com",
	}, testPasswordConfig(), nil)
	require.Error(t, err)
}
