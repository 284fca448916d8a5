// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/streetpulse/models"
)

// MaxBodyBytes caps JSON request bodies. Comments and login names are the
// largest thing a client sends.
const MaxBodyBytes = 64 << 10

// statusWriter remembers what a handler wrote so the request log can
// report it.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

// WithLogging wraps a handler with request logging. Server errors are
// logged at error level, rejected requests at warn.
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		level := slog.LevelInfo
		switch {
		case sw.status >= 500:
			level = slog.LevelError
		case sw.status >= 400:
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"size", humanize.Bytes(uint64(sw.bytes)),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ParseJSONBody decodes at most MaxBodyBytes of the request body into v.
// An empty body yields io.EOF so callers with optional bodies can tell it
// apart from malformed JSON.
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes)).Decode(v)
}

// CORS lets the dashboard frontend call the API from another origin.
// Content-Disposition is exposed so the browser can name frame and impact
// report downloads.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+models.ViewerTokenHeader)
		h.Set("Access-Control-Expose-Headers", "Content-Disposition")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
