// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with method, path, status, response size and
duration_ms. 4xx responses log at warn, 5xx at error.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type,
Authorization, X-Viewer-Token, and exposes Content-Disposition so frame
and impact report downloads keep their names. Preflights get 204.

# Viewer Authentication

Dashboard routes require a signed-in viewer:

	requireViewer := middleware.RequireViewer(sessions)
	mux.HandleFunc("GET /reports", middleware.WithLogging(requireViewer(h.ListReports)))

The token is read from X-Viewer-Token (or an Authorization bearer token).
Requests without a live token get 401. Handlers read the viewer back with
ViewerFromContext.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (capped at MaxBodyBytes; an empty body returns
io.EOF):

	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
