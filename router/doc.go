// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the StreetPulse API.

# Route Registration

NewRouter loads the seed, picks the camera adapter and returns a
configured http.ServeMux with all endpoints:

	mux, err := router.NewRouter(db, cfg)

# Endpoints

Health (public):

	GET /health
	GET /

Identity:

	POST /auth/login  - Sign in, returns viewer_token (public)
	POST /auth/logout - Sign out and drop the workspace
	GET  /auth/me     - Current viewer and stats

Every other route requires X-Viewer-Token.

Dashboard:

	GET  /pulse                  - Wellbeing score, metrics, alert
	GET  /orbit                  - Map mode, layers, recent citizen reports
	POST /orbit/mode             - Toggle satellite/citizen view
	POST /orbit/layers/{type}    - Toggle a metric layer
	GET  /proposals              - Proposals with tallies
	POST /proposals/{id}/vote    - Vote up/down (same vote clears)
	GET  /impact                 - Impact stats, achievements, stories
	GET  /impact/report          - Impact summary as a JSON download

Citizen reports:

	GET    /reports               - All reports with engagement
	GET    /reports/{id}          - One report
	POST   /reports/{id}/like     - Toggle like
	POST   /reports/{id}/comments - Add comment
	POST   /reports/{id}/select   - Open the detail or comments overlay
	GET    /overlay               - Current overlay
	DELETE /overlay               - Close the overlay

Missions and capture:

	GET    /missions              - Missions, submission counts, viewer stats
	POST   /missions/{id}/capture - Open the camera for a mission
	GET    /capture               - Capture session state
	POST   /capture/shot          - Freeze a frame
	POST   /capture/retake        - Discard the frame, back to live
	POST   /capture/facing        - Switch front/rear camera
	POST   /capture/submit        - Submit the frame, credit the mission
	DELETE /capture               - Close the session
	GET    /capture/frame         - Frozen frame as a download
	POST   /capture/download      - Save the frozen frame on the server
	GET    /submissions           - The viewer's stored submissions
	GET    /submissions/{id}/frame - One stored image

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(sessions, manager)
	dashboardHandler := handlers.NewDashboardHandler(manager, submissions)
	reportHandler := handlers.NewReportHandler(manager)
	captureHandler := handlers.NewCaptureHandler(manager)

Handlers share the workspace.Manager; the submission store wraps the
database connection.
*/
package router
