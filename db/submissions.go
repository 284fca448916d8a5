// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/streetpulse/capture"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionRecord is a stored submission without its image bytes.
type SubmissionRecord struct {
	ID          string    `json:"id"`
	MissionID   string    `json:"mission_id"`
	ViewerID    string    `json:"viewer_id"`
	Facing      string    `json:"facing"`
	MIMEType    string    `json:"mime_type"`
	ByteSize    int64     `json:"byte_size"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmissionStore is the submission endpoint for finished captures.
type SubmissionStore struct {
	db *sql.DB
}

func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

// Submit implements capture.Submitter.
func (s *SubmissionStore) Submit(ctx context.Context, sub capture.Submission) error {
	f := sub.Frame
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submission (id, session_id, mission_id, viewer_id, facing, mime_type, width, height, frame, byte_size, captured_at, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, sub.ID, sub.SessionID, sub.MissionID, sub.ViewerID, string(f.Facing), f.MIMEType,
		f.Width, f.Height, f.Data, len(f.Data), f.CapturedAt.UTC(), sub.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	slog.Info("submission stored",
		"submission_id", sub.ID,
		"mission_id", sub.MissionID,
		"size", humanize.Bytes(uint64(len(f.Data))),
	)
	return nil
}

// CountByMission returns how many captures have been submitted for a mission.
func (s *SubmissionStore) CountByMission(ctx context.Context, missionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM submission WHERE mission_id = $1
	`, missionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return n, nil
}

// ListByViewer returns a viewer's submissions, newest first.
func (s *SubmissionStore) ListByViewer(ctx context.Context, viewerID string) ([]SubmissionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mission_id, viewer_id, facing, mime_type, byte_size, submitted_at
		FROM submission
		WHERE viewer_id = $1
		ORDER BY submitted_at DESC, id
	`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	records := []SubmissionRecord{}
	for rows.Next() {
		var r SubmissionRecord
		if err := rows.Scan(&r.ID, &r.MissionID, &r.ViewerID, &r.Facing, &r.MIMEType, &r.ByteSize, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return records, nil
}

// Frame loads the stored image bytes for one of a viewer's submissions.
func (s *SubmissionStore) Frame(ctx context.Context, viewerID, id string) ([]byte, string, error) {
	var data []byte
	var mime string
	err := s.db.QueryRowContext(ctx, `
		SELECT frame, mime_type FROM submission WHERE id = $1 AND viewer_id = $2
	`, id, viewerID).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", ErrSubmissionNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load submission: %w", err)
	}
	return data, mime, nil
}
