package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/caioalmeida/mediateam-backend/api/responses"
	"github.com/caioalmeida/mediateam-backend/pkg/config"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MediaTeam-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies both backing stores before reporting ready.
func HealthReady(cfg *config.Config, database, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MediaTeam-Env", cfg.App.Env)

		var err error
		if database != nil {
			err = multierr.Append(err, database.Ping(r.Context()))
		}
		if cache != nil {
			err = multierr.Append(err, cache.Ping(r.Context()))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
