package controllers

import (
	"net/http"
	"strings"

	"github.com/caioalmeida/mediateam-backend/api/responses"
	"github.com/caioalmeida/mediateam-backend/api/validators"
	feedbacksvc "github.com/caioalmeida/mediateam-backend/internal/feedback"
	pkgerrors "github.com/caioalmeida/mediateam-backend/pkg/errors"
	"github.com/caioalmeida/mediateam-backend/pkg/logger"
	"github.com/caioalmeida/mediateam-backend/pkg/pagination"
)

// FeedbackSubmit records a suggestion or complaint from the caller.
func FeedbackSubmit(svc feedbacksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feedback service unavailable"))
			return
		}

		uid, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body feedbacksvc.SubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Submit(r.Context(), uid, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// FeedbackList returns feedback entries newest first with cursor pagination.
func FeedbackList(svc feedbacksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "feedback service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
