// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/capture"
	"github.com/danielhkuo/streetpulse/catalog"
	"github.com/danielhkuo/streetpulse/cliparse"
	"github.com/danielhkuo/streetpulse/db"
	"github.com/danielhkuo/streetpulse/handlers"
	"github.com/danielhkuo/streetpulse/middleware"
	"github.com/danielhkuo/streetpulse/workspace"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	seed, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	camera, err := capture.NewCamera(cfg.CameraMode, 0)
	if err != nil {
		return nil, err
	}

	submissions := db.NewSubmissionStore(conn)
	sessions := auth.NewSessions(cfg.SessionSalt)
	manager := workspace.NewManager(seed, workspace.Options{
		Camera:            camera,
		Submitter:         submissions,
		Saver:             capture.DirSaver{Dir: cfg.DownloadDir},
		PermissionTimeout: cfg.PermissionTimeout,
	})

	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessions, manager)
	dashboardHandler := handlers.NewDashboardHandler(manager, submissions)
	reportHandler := handlers.NewReportHandler(manager)
	captureHandler := handlers.NewCaptureHandler(manager)

	// Everything below /auth/login needs a signed-in viewer
	viewer := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireViewer(sessions)(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Identity
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", viewer(authHandler.Me))

	// Dashboard pages
	mux.HandleFunc("GET /pulse", viewer(dashboardHandler.Pulse))
	mux.HandleFunc("GET /orbit", viewer(dashboardHandler.Orbit))
	mux.HandleFunc("POST /orbit/mode", viewer(dashboardHandler.ToggleMode))
	mux.HandleFunc("POST /orbit/layers/{type}", viewer(dashboardHandler.ToggleLayer))
	mux.HandleFunc("GET /missions", viewer(dashboardHandler.Missions))
	mux.HandleFunc("GET /proposals", viewer(dashboardHandler.Proposals))
	mux.HandleFunc("POST /proposals/{id}/vote", viewer(dashboardHandler.Vote))
	mux.HandleFunc("GET /impact", viewer(dashboardHandler.Impact))
	mux.HandleFunc("GET /impact/report", viewer(dashboardHandler.ImpactReport))
	mux.HandleFunc("GET /submissions", viewer(dashboardHandler.Submissions))
	mux.HandleFunc("GET /submissions/{id}/frame", viewer(dashboardHandler.SubmissionFrame))

	// Citizen reports
	mux.HandleFunc("GET /reports", viewer(reportHandler.ListReports))
	mux.HandleFunc("GET /reports/{id}", viewer(reportHandler.GetReport))
	mux.HandleFunc("POST /reports/{id}/like", viewer(reportHandler.ToggleLike))
	mux.HandleFunc("POST /reports/{id}/comments", viewer(reportHandler.AddComment))
	mux.HandleFunc("POST /reports/{id}/select", viewer(reportHandler.Select))
	mux.HandleFunc("GET /overlay", viewer(reportHandler.GetOverlay))
	mux.HandleFunc("DELETE /overlay", viewer(reportHandler.ClearOverlay))

	// Mission capture
	mux.HandleFunc("POST /missions/{id}/capture", viewer(captureHandler.StartMission))
	mux.HandleFunc("GET /capture", viewer(captureHandler.GetCapture))
	mux.HandleFunc("DELETE /capture", viewer(captureHandler.CloseCapture))
	mux.HandleFunc("POST /capture/shot", viewer(captureHandler.Shot))
	mux.HandleFunc("POST /capture/retake", viewer(captureHandler.Retake))
	mux.HandleFunc("POST /capture/facing", viewer(captureHandler.ToggleFacing))
	mux.HandleFunc("POST /capture/submit", viewer(captureHandler.Submit))
	mux.HandleFunc("GET /capture/frame", viewer(captureHandler.Frame))
	mux.HandleFunc("POST /capture/download", viewer(captureHandler.Download))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("streetpulse API v1"))
	})

	return mux, nil
}
