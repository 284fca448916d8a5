// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/middleware"
	"github.com/danielhkuo/streetpulse/models"
	"github.com/danielhkuo/streetpulse/workspace"
)

type AuthHandler struct {
	sessions *auth.Sessions
	manager  *workspace.Manager
}

func NewAuthHandler(sessions *auth.Sessions, manager *workspace.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions, manager: manager}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	viewer, token, err := h.sessions.Login(req.DisplayName)
	if err != nil {
		writeError(w, err)
		return
	}

	// Fresh workspace from the seed
	h.manager.Open(viewer)

	slog.Info("workspace opened", "viewer_id", viewer.ID, "remote", r.RemoteAddr)

	middleware.JSONResponse(w, http.StatusCreated, models.LoginResponse{
		ViewerToken: token,
		Viewer:      viewer,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	viewer, err := h.sessions.Logout(middleware.ViewerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	// Engagement state does not outlive the session
	h.manager.Drop(viewer.ID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "signed out",
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ws, ok := viewerWorkspace(h.manager, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "sign in required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		Viewer: ws.Viewer,
		Stats:  ws.Stats(),
	})
}
