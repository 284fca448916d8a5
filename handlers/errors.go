// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/capture"
	"github.com/danielhkuo/streetpulse/catalog"
	"github.com/danielhkuo/streetpulse/db"
	"github.com/danielhkuo/streetpulse/engagement"
	"github.com/danielhkuo/streetpulse/middleware"
	"github.com/danielhkuo/streetpulse/models"
	"github.com/danielhkuo/streetpulse/workspace"
)

// statusFor maps domain errors to HTTP status codes. Rejected operations
// never change state, so 4xx is always safe to retry.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engagement.ErrReportNotFound),
		errors.Is(err, engagement.ErrProposalNotFound),
		errors.Is(err, workspace.ErrMissionNotFound),
		errors.Is(err, workspace.ErrNoCapture),
		errors.Is(err, db.ErrSubmissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, engagement.ErrEmptyComment),
		errors.Is(err, engagement.ErrInvalidVote),
		errors.Is(err, catalog.ErrUnknownMetricType),
		errors.Is(err, auth.ErrInvalidDisplayName),
		errors.Is(err, capture.ErrInvalidFilename):
		return http.StatusBadRequest
	case errors.Is(err, capture.ErrInvalidTransition),
		errors.Is(err, capture.ErrSessionBusy),
		errors.Is(err, capture.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, status, "Internal error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}

// writeCaptureResult answers a capture operation. A session that moved to
// its error phase is a normal outcome: the client gets the state, with the
// error kind and detail, and decides what to show.
func writeCaptureResult(w http.ResponseWriter, s *capture.Session, err error, okStatus int) {
	var ce *capture.Error
	if err != nil && !errors.As(err, &ce) {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, okStatus, models.CaptureResponse{Session: s.State()})
}

// viewerWorkspace returns the workspace of the viewer RequireViewer put in
// the request context.
func viewerWorkspace(m *workspace.Manager, r *http.Request) (*workspace.Workspace, bool) {
	v, ok := middleware.ViewerFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return m.Open(v), true
}
