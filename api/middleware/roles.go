package middleware

import (
	"net/http"

	"github.com/caioalmeida/mediateam-backend/api/responses"
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
)

// RequireApproved rejects callers whose profile has not been approved yet.
// A pending member holds a valid session but cannot reach the store at all.
func RequireApproved(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if StatusFromContext(r.Context()) != string(enums.UserStatusApproved) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account pending approval"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireApprover allows admins and moderators through.
func RequireApprover(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := enums.ParseUserRole(RoleFromContext(r.Context()))
			if err != nil || !role.IsApprover() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "approver role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireModerator allows only moderators through.
func RequireModerator(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != string(enums.UserRoleModerator) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "moderator role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
