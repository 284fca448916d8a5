// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workspace

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/capture"
	"github.com/danielhkuo/streetpulse/catalog"
	"github.com/danielhkuo/streetpulse/engagement"
)

var (
	ErrMissionNotFound = errors.New("mission not found")
	ErrNoCapture       = errors.New("no capture session")
)

// PointsPerLevel converts mission points to a viewer level.
const PointsPerLevel = 350

type Options struct {
	Camera            capture.Camera
	Submitter         capture.Submitter
	Saver             capture.Saver
	PermissionTimeout time.Duration
	Now               func() time.Time
}

type UserStats struct {
	Level             int      `json:"level"`
	TotalPoints       int      `json:"total_points"`
	CompletedMissions int      `json:"completed_missions"`
	Rank              int      `json:"rank"`
	Badges            []string `json:"badges"`
}

// Workspace is everything one signed-in viewer interacts with. It is
// created at sign-in from the seed and dropped at sign-out.
type Workspace struct {
	Viewer    auth.Viewer
	Reports   *engagement.Store
	Proposals *engagement.ProposalBoard
	Map       *MapView

	seed *catalog.Seed
	opts Options

	mu      sync.Mutex
	stats   UserStats
	session *capture.Session
}

func newWorkspace(v auth.Viewer, seed *catalog.Seed, opts Options) *Workspace {
	now := opts.Now()
	w := &Workspace{
		Viewer:    v,
		Reports:   engagement.NewStore(v.DisplayName, engagement.FromSeed(seed.Reports, now), opts.Now),
		Proposals: engagement.NewProposalBoard(seed.Proposals),
		Map:       NewMapView(seed.DefaultLayers),
		seed:      seed,
		opts:      opts,
		stats: UserStats{
			TotalPoints:       seed.UserStats.TotalPoints,
			CompletedMissions: seed.UserStats.CompletedMissions,
			Rank:              seed.UserStats.Rank,
			Badges:            slices.Clone(seed.UserStats.Badges),
		},
	}
	w.Reports.Subscribe(func(c engagement.Change) {
		slog.Debug("report changed", "viewer_id", v.ID, "report_id", c.ReportID, "kind", c.Kind)
	})
	return w
}

func (w *Workspace) Stats() UserStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := w.stats
	st.Badges = slices.Clone(w.stats.Badges)
	st.Level = st.TotalPoints / PointsPerLevel
	return st
}

// StartCapture opens a capture session for a mission. It blocks while the
// camera permission is pending; CloseCapture from another request cancels it.
func (w *Workspace) StartCapture(ctx context.Context, missionID string) (*capture.Session, error) {
	s, err := w.reserveCapture(missionID)
	if err != nil {
		return nil, err
	}
	return s, s.Open(ctx, missionID)
}

// reserveCapture publishes a new idle session so CloseCapture can reach it
// before Open starts.
func (w *Workspace) reserveCapture(missionID string) (*capture.Session, error) {
	if _, ok := w.seed.Mission(missionID); !ok {
		return nil, ErrMissionNotFound
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session != nil {
		return nil, capture.ErrSessionBusy
	}
	w.session = capture.NewSession(capture.Options{
		Camera:            w.opts.Camera,
		Submitter:         w.opts.Submitter,
		Saver:             w.opts.Saver,
		PermissionTimeout: w.opts.PermissionTimeout,
		ViewerID:          w.Viewer.ID,
		Now:               w.opts.Now,
	})
	return w.session, nil
}

// Capture returns the active capture session.
func (w *Workspace) Capture() (*capture.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session == nil {
		return nil, ErrNoCapture
	}
	return w.session, nil
}

// SubmitCapture submits the frozen frame, credits the mission and ends the
// capture session.
func (w *Workspace) SubmitCapture(ctx context.Context) (capture.Submission, catalog.Mission, error) {
	s, err := w.Capture()
	if err != nil {
		return capture.Submission{}, catalog.Mission{}, err
	}

	sub, err := s.Submit(ctx)
	if err != nil {
		return capture.Submission{}, catalog.Mission{}, err
	}

	mission, _ := w.seed.Mission(sub.MissionID)

	w.mu.Lock()
	w.stats.TotalPoints += mission.Points
	w.stats.CompletedMissions++
	if w.session == s {
		w.session = nil
	}
	w.mu.Unlock()

	slog.Info("mission completed", "viewer_id", w.Viewer.ID, "mission_id", mission.ID, "points", mission.Points)
	return sub, mission, nil
}

// CloseCapture closes and forgets the capture session in any phase.
func (w *Workspace) CloseCapture() error {
	w.mu.Lock()
	s := w.session
	w.session = nil
	w.mu.Unlock()

	if s == nil {
		return ErrNoCapture
	}
	s.Close()
	return nil
}

// Close releases everything the workspace holds.
func (w *Workspace) Close() {
	_ = w.CloseCapture()
}
