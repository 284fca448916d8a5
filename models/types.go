// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/capture"
	"github.com/danielhkuo/streetpulse/catalog"
	"github.com/danielhkuo/streetpulse/db"
	"github.com/danielhkuo/streetpulse/engagement"
	"github.com/danielhkuo/streetpulse/workspace"
)

// ViewerTokenHeader carries the token returned by login.
const ViewerTokenHeader = "X-Viewer-Token"

// Request types

type LoginRequest struct {
	DisplayName string `json:"display_name"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

// overlay is "detail" or "comments"
type SelectRequest struct {
	Overlay string `json:"overlay"`
}

// vote is "up" or "down"
type VoteRequest struct {
	Vote string `json:"vote"`
}

type DownloadRequest struct {
	Filename string `json:"filename"`
}

// Response types

type LoginResponse struct {
	ViewerToken string      `json:"viewer_token"`
	Viewer      auth.Viewer `json:"viewer"`
}

type MeResponse struct {
	Viewer auth.Viewer         `json:"viewer"`
	Stats  workspace.UserStats `json:"stats"`
}

type MetricView struct {
	Type        catalog.MetricType `json:"type"`
	Title       string             `json:"title"`
	Icon        string             `json:"icon"`
	Color       string             `json:"color"`
	CardClass   string             `json:"card_class"`
	Value       string             `json:"value"`
	Status      catalog.Status     `json:"status"`
	StatusColor string             `json:"status_color"`
	Description string             `json:"description"`
}

type PulseResponse struct {
	WellbeingScore int           `json:"wellbeing_score"`
	WellbeingLabel string        `json:"wellbeing_label"`
	WellbeingColor string        `json:"wellbeing_color"`
	UpdatedLabel   string        `json:"updated_label"`
	Sources        string        `json:"sources"`
	Alert          catalog.Alert `json:"alert"`
	Metrics        []MetricView  `json:"metrics"`
}

type LayerView struct {
	Type      catalog.MetricType `json:"type"`
	Title     string             `json:"title"`
	Color     string             `json:"color"`
	Intensity string             `json:"intensity"`
	Active    bool               `json:"active"`
}

type CitizenSummary struct {
	Total  int                 `json:"total"`
	Recent []engagement.Report `json:"recent"`
}

type OrbitResponse struct {
	Mode     workspace.ViewMode `json:"mode"`
	Layers   []LayerView        `json:"layers"`
	Citizens CitizenSummary     `json:"citizens"`
}

type ReportsResponse struct {
	Reports []engagement.Report `json:"reports"`
}

type CommentResponse struct {
	Comment engagement.Comment `json:"comment"`
	Report  engagement.Report  `json:"report"`
}

type OverlayResponse struct {
	Selection engagement.Selection `json:"selection"`
	Report    *engagement.Report   `json:"report,omitempty"`
}

type MissionView struct {
	catalog.Mission
	ActiveLabel string `json:"active_label"`
	Submissions int    `json:"submissions"`
}

type MissionsResponse struct {
	Missions []MissionView       `json:"missions"`
	Stats    workspace.UserStats `json:"stats"`
}

type CaptureResponse struct {
	Session capture.State `json:"session"`
}

type SubmitResponse struct {
	SubmissionID string              `json:"submission_id"`
	MissionID    string              `json:"mission_id"`
	PointsEarned int                 `json:"points_earned"`
	Stats        workspace.UserStats `json:"stats"`
	Message      string              `json:"message"`
}

type DownloadResponse struct {
	Filename string `json:"filename"`
}

type ProposalsResponse struct {
	Proposals []engagement.Proposal `json:"proposals"`
}

type ImpactResponse struct {
	Stats        catalog.ImpactStats   `json:"stats"`
	Achievements []catalog.Achievement `json:"achievements"`
	Unlocked     int                   `json:"unlocked"`
	Stories      []catalog.Story       `json:"stories"`
}

// ImpactReport is the downloadable impact summary.
type ImpactReport struct {
	Viewer       string                `json:"viewer"`
	GeneratedAt  time.Time             `json:"generated_at"`
	UserStats    workspace.UserStats   `json:"user_stats"`
	Stats        catalog.ImpactStats   `json:"stats"`
	Achievements []catalog.Achievement `json:"achievements"`
}

type SubmissionsResponse struct {
	Submissions []db.SubmissionRecord `json:"submissions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
