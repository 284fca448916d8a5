// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: display_name
  - CommentRequest: text
  - SelectRequest: overlay ("detail" or "comments")
  - VoteRequest: vote ("up" or "down")
  - DownloadRequest: filename (optional)

# Response Types

Types for JSON responses:

  - LoginResponse: viewer_token, viewer
  - PulseResponse: wellbeing score and label, metrics, alert
  - OrbitResponse: map mode, layers, citizen report summary
  - ReportsResponse, CommentResponse, OverlayResponse
  - MissionsResponse: missions with submission counts, viewer stats
  - CaptureResponse: capture session state
  - SubmitResponse: submission id, points earned, updated stats
  - ProposalsResponse, ImpactResponse, ImpactReport
  - ErrorResponse: error, message

Domain types (reports, proposals, capture state) are embedded directly
from the engagement, capture and workspace packages so their JSON shape
is defined in one place.

# Authentication Header

Every dashboard request carries the token from login:

	X-Viewer-Token: <viewer_token>
*/
package models
