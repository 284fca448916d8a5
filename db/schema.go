// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	blob := "BLOB"
	if dialect == DialectPostgres {
		blob = "BYTEA"
	}

	_, err := db.Exec(strings.ReplaceAll(schema, "{{blob}}", blob))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Mission photo submissions
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    mission_id TEXT NOT NULL,
    viewer_id TEXT NOT NULL,
    facing TEXT NOT NULL CHECK (facing IN ('front', 'rear')),
    mime_type TEXT NOT NULL,
    width INTEGER NOT NULL DEFAULT 0,
    height INTEGER NOT NULL DEFAULT 0,
    frame {{blob}} NOT NULL,
    byte_size INTEGER NOT NULL,
    captured_at TIMESTAMP NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_mission_id ON submission(mission_id);
CREATE INDEX IF NOT EXISTS idx_submission_viewer_id ON submission(viewer_id);
`
