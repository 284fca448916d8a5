// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/danielhkuo/streetpulse/capture"
	"github.com/danielhkuo/streetpulse/middleware"
	"github.com/danielhkuo/streetpulse/models"
	"github.com/danielhkuo/streetpulse/workspace"
)

// CaptureHandler drives the viewer's mission capture session.
type CaptureHandler struct {
	manager *workspace.Manager
}

func NewCaptureHandler(manager *workspace.Manager) *CaptureHandler {
	return &CaptureHandler{manager: manager}
}

// StartMission handles POST /missions/{id}/capture
//
// Blocks while the camera permission is pending. The session state in the
// response is live on success or error when the camera could not be opened.
func (h *CaptureHandler) StartMission(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	s, err := ws.StartCapture(r.Context(), r.PathValue("id"))
	if s == nil {
		writeError(w, err)
		return
	}
	status := http.StatusCreated
	if err != nil {
		status = http.StatusOK
	}
	writeCaptureResult(w, s, err, status)
}

// GetCapture handles GET /capture
func (h *CaptureHandler) GetCapture(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *capture.Session) error { return nil })
}

// Shot handles POST /capture/shot
func (h *CaptureHandler) Shot(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *capture.Session) error {
		_, err := s.Capture()
		return err
	})
}

// Retake handles POST /capture/retake
func (h *CaptureHandler) Retake(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *capture.Session) error {
		return s.Retake()
	})
}

// ToggleFacing handles POST /capture/facing
func (h *CaptureHandler) ToggleFacing(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *capture.Session) error {
		return s.ToggleFacing(r.Context())
	})
}

// Submit handles POST /capture/submit
func (h *CaptureHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	sub, mission, err := ws.SubmitCapture(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		SubmissionID: sub.ID,
		MissionID:    mission.ID,
		PointsEarned: mission.Points,
		Stats:        ws.Stats(),
		Message:      fmt.Sprintf("Mission complete! +%d points", mission.Points),
	})
}

// CloseCapture handles DELETE /capture
func (h *CaptureHandler) CloseCapture(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	if err := ws.CloseCapture(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Frame handles GET /capture/frame, returning the frozen frame as a
// download.
func (h *CaptureHandler) Frame(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}
	s, err := ws.Capture()
	if err != nil {
		writeError(w, err)
		return
	}

	f, err := s.Frame()
	if err != nil {
		writeError(w, err)
		return
	}

	name := capture.SuggestedName(s.State().MissionID, f)
	w.Header().Set("Content-Type", f.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(f.Data)
}

// Download handles POST /capture/download, saving the frozen frame on the
// server. The filename is optional.
func (h *CaptureHandler) Download(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	// An empty body, chunked or not, means the suggested name.
	var req models.DownloadRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s, err := ws.Capture()
	if err != nil {
		writeError(w, err)
		return
	}
	name, err := s.Download(req.Filename)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DownloadResponse{Filename: name})
}

func (h *CaptureHandler) withSession(w http.ResponseWriter, r *http.Request, op func(*capture.Session) error) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}
	s, err := ws.Capture()
	if err != nil {
		writeError(w, err)
		return
	}
	writeCaptureResult(w, s, op(s), http.StatusOK)
}
