// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/streetpulse/cliparse"
	"github.com/danielhkuo/streetpulse/db"
	"github.com/danielhkuo/streetpulse/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       cliparse.DefaultDatabaseURL,
		DatabaseType:      db.DialectSQLite,
		SessionSalt:       "test-session-salt",
		CameraMode:        "simulated",
		PermissionTimeout: 2 * time.Second,
		DownloadDir:       t.TempDir(),
	}
}

// LoginTestViewer signs a viewer in through the router and returns the
// viewer token.
func LoginTestViewer(t *testing.T, h http.Handler, displayName string) string {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, MakeRequest("POST", "/auth/login", models.LoginRequest{DisplayName: displayName}, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to log in %q: status %d, body %s", displayName, w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	AssertJSON(t, w, &resp)
	return resp.ViewerToken
}

// ViewerHeaders returns the headers that authenticate a request as token.
func ViewerHeaders(token string) map[string]string {
	return map[string]string{models.ViewerTokenHeader: token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
