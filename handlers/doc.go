// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the StreetPulse API.

# Handler Types

Each handler is a struct built by a constructor:

  - AuthHandler: sign in, sign out, current viewer
  - DashboardHandler: pulse, orbit view, missions, proposals, impact, stored submissions
  - ReportHandler: citizen reports, likes, comments, overlay selection
  - CaptureHandler: the mission camera session

	reportHandler := handlers.NewReportHandler(manager)

All but AuthHandler.Login and AuthHandler.Logout expect to run behind
middleware.RequireViewer and read the viewer's workspace from the request.

# Engagement

Likes, comments and overlay selection act on the viewer's own copy of the
seeded reports:

	POST /reports/{id}/like      → ToggleLike
	POST /reports/{id}/comments  → AddComment (blank text is 400)
	POST /reports/{id}/select    → Select (detail or comments)

An unknown report id is 404 and changes nothing.

# Capture Flow

	POST /missions/{id}/capture → StartMission (idle → live, or error)
	POST /capture/facing        → ToggleFacing (live only)
	POST /capture/shot          → Shot (live → frozen)
	POST /capture/retake        → Retake (frozen → live)
	POST /capture/submit        → Submit (frozen → done, mission credited)
	DELETE /capture             → CloseCapture (any phase)

Capture responses carry the session state. A camera failure is reported
as phase "error" with error_kind and error_detail, not as an HTTP error.
Operations not allowed in the current phase get 409 and leave the session
as it was.

# Error Mapping

	not found (report, proposal, mission, session) → 404
	validation (blank comment, bad vote, unknown layer) → 400
	wrong phase, session busy → 409
	anything else → 500, logged
*/
package handlers
