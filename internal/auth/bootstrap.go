package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/caioalmeida/mediateam-backend/internal/users"
	"github.com/caioalmeida/mediateam-backend/pkg/config"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
	"github.com/caioalmeida/mediateam-backend/pkg/security"
)

type bootstrapRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// EnsureBootstrapModerator creates the configured moderator account when it
// does not exist yet. Without it a fresh deployment has nobody who can
// approve registrations.
func EnsureBootstrapModerator(ctx context.Context, client bootstrapRunner, cfg config.BootstrapConfig, passwordCfg config.PasswordConfig, logg *logger.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.ModeratorEmail))
	if email == "" {
		return nil
	}
	if cfg.ModeratorPassword == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, "bootstrap moderator password is required when email is set")
	}

	passwordHash, err := security.HashPassword(cfg.ModeratorPassword, passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash bootstrap password")
	}

	role := enums.UserRoleModerator
	status := enums.UserStatusApproved

	return client.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check bootstrap email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Name:         strings.TrimSpace(cfg.ModeratorName),
			Email:        email,
			PasswordHash: passwordHash,
			Role:         &role,
			Status:       &status,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create bootstrap moderator")
		}

		if logg != nil {
			logCtx := logg.WithFields(ctx, map[string]any{"user_id": user.ID.String()})
			logg.Info(logCtx, "bootstrap moderator created")
		}
		return nil
	})
}
