// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/capture"
	"github.com/danielhkuo/streetpulse/catalog"
	"github.com/danielhkuo/streetpulse/db"
	"github.com/danielhkuo/streetpulse/middleware"
	"github.com/danielhkuo/streetpulse/testutil"
	"github.com/danielhkuo/streetpulse/workspace"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	mux         *http.ServeMux
	manager     *workspace.Manager
	submissions *db.SubmissionStore
	downloadDir string
}

// newTestEnv wires the handlers the way the router does, against an
// in-memory database and the given camera.
func newTestEnv(t *testing.T, cam capture.Camera) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	seed, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load seed: %v", err)
	}

	env := &testEnv{
		submissions: db.NewSubmissionStore(conn),
		downloadDir: t.TempDir(),
	}
	sessions := auth.NewSessions("test-session-salt")
	env.manager = workspace.NewManager(seed, workspace.Options{
		Camera:            cam,
		Submitter:         env.submissions,
		Saver:             capture.DirSaver{Dir: env.downloadDir},
		PermissionTimeout: time.Second,
		Now:               func() time.Time { return testNow },
	})

	authHandler := NewAuthHandler(sessions, env.manager)
	dashboardHandler := NewDashboardHandler(env.manager, env.submissions)
	reportHandler := NewReportHandler(env.manager)
	captureHandler := NewCaptureHandler(env.manager)
	viewer := middleware.RequireViewer(sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/me", viewer(authHandler.Me))

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

	mux.HandleFunc("GET /reports", viewer(reportHandler.ListReports))
	mux.HandleFunc("GET /reports/{id}", viewer(reportHandler.GetReport))
	mux.HandleFunc("POST /reports/{id}/like", viewer(reportHandler.ToggleLike))
	mux.HandleFunc("POST /reports/{id}/comments", viewer(reportHandler.AddComment))
	mux.HandleFunc("POST /reports/{id}/select", viewer(reportHandler.Select))
	mux.HandleFunc("GET /overlay", viewer(reportHandler.GetOverlay))
	mux.HandleFunc("DELETE /overlay", viewer(reportHandler.ClearOverlay))

	mux.HandleFunc("POST /missions/{id}/capture", viewer(captureHandler.StartMission))
	mux.HandleFunc("GET /capture", viewer(captureHandler.GetCapture))
	mux.HandleFunc("DELETE /capture", viewer(captureHandler.CloseCapture))
	mux.HandleFunc("POST /capture/shot", viewer(captureHandler.Shot))
	mux.HandleFunc("POST /capture/retake", viewer(captureHandler.Retake))
	mux.HandleFunc("POST /capture/facing", viewer(captureHandler.ToggleFacing))
	mux.HandleFunc("POST /capture/submit", viewer(captureHandler.Submit))
	mux.HandleFunc("GET /capture/frame", viewer(captureHandler.Frame))
	mux.HandleFunc("POST /capture/download", viewer(captureHandler.Download))

	env.mux = mux
	return env
}

// do sends a request as the viewer behind token (none when empty).
func (e *testEnv) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var headers map[string]string
	if token != "" {
		headers = testutil.ViewerHeaders(token)
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
	return w
}

func (e *testEnv) login(t *testing.T, name string) string {
	t.Helper()
	return testutil.LoginTestViewer(t, e.mux, name)
}
