package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caioalmeida/mediateam-backend/api/middleware"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
)

// requestUserID extracts and parses the authenticated user's ID from the
// request context.
func requestUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func requestRole(r *http.Request) (enums.UserRole, error) {
	raw := middleware.RoleFromContext(r.Context())
	role, err := enums.ParseUserRole(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid role")
	}
	return role, nil
}

func urlParamUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
