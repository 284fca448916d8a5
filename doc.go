// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the StreetPulse API server.

StreetPulse is a civic-engagement dashboard: environmental metrics for the
neighbourhood, citizen reports that viewers like and comment on, missions
completed by taking a photo, proposals to vote on and a personal impact
tracker.

# Starting the Server

Only the session salt is required; everything else has a default:

	SESSION_SALT=dev go run .

Or with flags:

	go run . -p 3318 -session-salt dev -camera simulated

A .env file in the working directory is read first.

# Configuration

Required settings:

  - SESSION_SALT (--session-salt): Secret for hashing viewer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Submission database (default: in-memory sqlite)
  - CAMERA_MODE (--camera): simulated, none or deny (default: simulated)
  - PERMISSION_TIMEOUT (--permission-timeout): Camera permission wait (default: 30s)
  - DOWNLOAD_DIR (--download-dir): Where saved captures go (default: downloads)
  - LOG_FORMAT: json for JSON logs

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, dashboard, reports, capture)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, viewer auth, JSON helpers
  - models: Request/response types
  - auth: Viewer tokens and sign-in sessions
  - workspace: Per-viewer dashboard state
  - engagement: Report likes, comments, overlays and proposal votes
  - capture: Camera session state machine and adapters
  - catalog: Metric types and the embedded seed data
  - db: Connection, schema and submission store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
