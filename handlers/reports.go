// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/streetpulse/engagement"
	"github.com/danielhkuo/streetpulse/middleware"
	"github.com/danielhkuo/streetpulse/models"
	"github.com/danielhkuo/streetpulse/workspace"
)

// ReportHandler serves citizen reports and their likes, comments and
// overlay selection.
type ReportHandler struct {
	manager *workspace.Manager
}

func NewReportHandler(manager *workspace.Manager) *ReportHandler {
	return &ReportHandler{manager: manager}
}

// ListReports handles GET /reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReportsResponse{
		Reports: ws.Reports.Reports(),
	})
}

// GetReport handles GET /reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	report, err := ws.Reports.Report(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, report)
}

// ToggleLike handles POST /reports/{id}/like
func (h *ReportHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	report, err := ws.Reports.ToggleLike(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, report)
}

// AddComment handles POST /reports/{id}/comments
func (h *ReportHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id := r.PathValue("id")
	comment, err := ws.Reports.AddComment(id, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := ws.Reports.Report(id)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CommentResponse{
		Comment: comment,
		Report:  report,
	})
}

// Select handles POST /reports/{id}/select
func (h *ReportHandler) Select(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var req models.SelectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id := r.PathValue("id")
	var err error
	switch engagement.Overlay(req.Overlay) {
	case engagement.OverlayDetail:
		err = ws.Reports.SelectForDetail(id)
	case engagement.OverlayComments:
		err = ws.Reports.SelectForComments(id)
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "overlay must be detail or comments")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	h.writeOverlay(w, ws)
}

// GetOverlay handles GET /overlay
func (h *ReportHandler) GetOverlay(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}
	h.writeOverlay(w, ws)
}

// ClearOverlay handles DELETE /overlay
func (h *ReportHandler) ClearOverlay(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}
	ws.Reports.ClearSelection()
	h.writeOverlay(w, ws)
}

func (h *ReportHandler) writeOverlay(w http.ResponseWriter, ws *workspace.Workspace) {
	sel, report := ws.Reports.Selection()
	middleware.JSONResponse(w, http.StatusOK, models.OverlayResponse{
		Selection: sel,
		Report:    report,
	})
}
