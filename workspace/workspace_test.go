// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/capture"
	"github.com/danielhkuo/streetpulse/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingCamera struct {
	mu     sync.Mutex
	opened int
	closed int
}

type countingStream struct {
	cam  *countingCamera
	once sync.Once
}

func (c *countingCamera) Supported() bool { return true }

func (c *countingCamera) RequestAccess(ctx context.Context, f capture.Facing) (capture.Stream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opened++
	return &countingStream{cam: c}, nil
}

func (c *countingCamera) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened - c.closed
}

func (s *countingStream) Snapshot() (capture.Frame, error) {
	return capture.Frame{Data: []byte("img"), MIMEType: "image/png"}, nil
}

func (s *countingStream) Release() {
	s.once.Do(func() {
		s.cam.mu.Lock()
		s.cam.closed++
		s.cam.mu.Unlock()
	})
}

func newTestManager(t *testing.T, cam capture.Camera) *Manager {
	t.Helper()
	seed, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewManager(seed, Options{
		Camera:            cam,
		PermissionTimeout: time.Second,
		Now:               func() time.Time { return now },
	})
}

var testViewer = auth.Viewer{ID: "v1", DisplayName: "Maya"}

func TestManagerOpenIsPerViewer(t *testing.T) {
	m := newTestManager(t, &countingCamera{})

	w1 := m.Open(testViewer)
	w2 := m.Open(testViewer)
	if w1 != w2 {
		t.Error("Open() should return the existing workspace")
	}
	other := m.Open(auth.Viewer{ID: "v2", DisplayName: "Jon"})
	if other == w1 {
		t.Error("different viewers must not share a workspace")
	}

	// Engagement is isolated between viewers.
	if _, err := w1.Reports.ToggleLike("rpt-downtown-plaza"); err != nil {
		t.Fatal(err)
	}
	r, _ := other.Reports.Report("rpt-downtown-plaza")
	if r.Engagement.LikedByViewer {
		t.Error("like leaked into another viewer's workspace")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestCommentAuthorIsViewer(t *testing.T) {
	m := newTestManager(t, &countingCamera{})
	w := m.Open(testViewer)

	c, err := w.Reports.AddComment("rpt-industrial-ave", "smells bad")
	if err != nil {
		t.Fatal(err)
	}
	if c.Author != "Maya" || c.ID != 1 {
		t.Errorf("unexpected comment %+v", c)
	}
}

func TestDropReleasesCamera(t *testing.T) {
	cam := &countingCamera{}
	m := newTestManager(t, cam)
	w := m.Open(testViewer)

	if _, err := w.StartCapture(context.Background(), "heat-patrol"); err != nil {
		t.Fatal(err)
	}
	if cam.live() != 1 {
		t.Fatalf("live streams = %d, want 1", cam.live())
	}

	m.Drop(testViewer.ID)

	if cam.live() != 0 {
		t.Errorf("live streams after Drop = %d, want 0", cam.live())
	}
	if _, ok := m.Get(testViewer.ID); ok {
		t.Error("workspace still registered after Drop")
	}
}

func TestStartCapture(t *testing.T) {
	m := newTestManager(t, &countingCamera{})
	w := m.Open(testViewer)

	if _, err := w.StartCapture(context.Background(), "no-such-mission"); !errors.Is(err, ErrMissionNotFound) {
		t.Errorf("unknown mission error = %v", err)
	}
	if _, err := w.Capture(); !errors.Is(err, ErrNoCapture) {
		t.Errorf("Capture() before start = %v", err)
	}

	s, err := w.StartCapture(context.Background(), "heat-patrol")
	if err != nil {
		t.Fatal(err)
	}
	if s.State().Phase != capture.PhaseLive {
		t.Errorf("phase = %s", s.State().Phase)
	}

	if _, err := w.StartCapture(context.Background(), "flood-watch"); !errors.Is(err, capture.ErrSessionBusy) {
		t.Errorf("second StartCapture() error = %v, want ErrSessionBusy", err)
	}

	if err := w.CloseCapture(); err != nil {
		t.Fatal(err)
	}
	if err := w.CloseCapture(); !errors.Is(err, ErrNoCapture) {
		t.Errorf("second CloseCapture() error = %v", err)
	}
}

// A close that lands between publishing the session and opening it must
// still leave the camera released.
func TestCloseBeforeOpenLeavesNoStream(t *testing.T) {
	cam := &countingCamera{}
	m := newTestManager(t, cam)
	w := m.Open(testViewer)

	s, err := w.reserveCapture("heat-patrol")
	if err != nil {
		t.Fatal(err)
	}
	if err := w.CloseCapture(); err != nil {
		t.Fatalf("CloseCapture() error = %v", err)
	}

	if err := s.Open(context.Background(), "heat-patrol"); !errors.Is(err, capture.ErrSessionClosed) {
		t.Errorf("Open() error = %v, want ErrSessionClosed", err)
	}
	if s.State().Phase != capture.PhaseIdle {
		t.Errorf("phase = %s, want idle", s.State().Phase)
	}
	if _, err := w.Capture(); !errors.Is(err, ErrNoCapture) {
		t.Errorf("Capture() error = %v, want ErrNoCapture", err)
	}
	if cam.live() != 0 {
		t.Errorf("live streams = %d, want 0", cam.live())
	}

	// The workspace can start a fresh capture afterwards.
	if _, err := w.StartCapture(context.Background(), "heat-patrol"); err != nil {
		t.Fatal(err)
	}
	w.Close()
	if cam.live() != 0 {
		t.Errorf("live streams after Close = %d, want 0", cam.live())
	}
}

func TestSubmitCaptureCreditsMission(t *testing.T) {
	cam := &countingCamera{}
	m := newTestManager(t, cam)
	w := m.Open(testViewer)

	before := w.Stats()
	if before.Level != 7 {
		t.Errorf("seed level = %d, want 7", before.Level)
	}

	s, err := w.StartCapture(context.Background(), "flood-watch")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Capture(); err != nil {
		t.Fatal(err)
	}

	sub, mission, err := w.SubmitCapture(context.Background())
	if err != nil {
		t.Fatalf("SubmitCapture() error = %v", err)
	}
	if sub.ViewerID != testViewer.ID || mission.ID != "flood-watch" {
		t.Errorf("unexpected submission %+v / mission %+v", sub, mission)
	}

	after := w.Stats()
	if after.TotalPoints != before.TotalPoints+75 || after.CompletedMissions != before.CompletedMissions+1 {
		t.Errorf("stats not credited: before %+v after %+v", before, after)
	}
	if _, err := w.Capture(); !errors.Is(err, ErrNoCapture) {
		t.Error("capture session should be cleared after submit")
	}
	if cam.live() != 0 {
		t.Errorf("live streams = %d", cam.live())
	}
}

func TestSubmitCaptureRequiresFrozen(t *testing.T) {
	m := newTestManager(t, &countingCamera{})
	w := m.Open(testViewer)
	defer w.Close()

	if _, err := w.StartCapture(context.Background(), "heat-patrol"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := w.SubmitCapture(context.Background()); !errors.Is(err, capture.ErrInvalidTransition) {
		t.Errorf("SubmitCapture() in live = %v", err)
	}
	if w.Stats().CompletedMissions != 34 {
		t.Error("rejected submit credited the mission")
	}
}

func TestMapView(t *testing.T) {
	mv := NewMapView([]catalog.MetricType{catalog.MetricHeat, catalog.MetricGreen})

	want := MapState{Mode: ModeSatellite, ActiveLayers: []catalog.MetricType{catalog.MetricHeat, catalog.MetricGreen}}
	if diff := cmp.Diff(want, mv.State()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}

	st, err := mv.ToggleLayer("air")
	if err != nil {
		t.Fatal(err)
	}
	want.ActiveLayers = []catalog.MetricType{catalog.MetricHeat, catalog.MetricAir, catalog.MetricGreen}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("after toggling air (-want +got):\n%s", diff)
	}

	st, _ = mv.ToggleLayer("heat")
	if len(st.ActiveLayers) != 2 || st.ActiveLayers[0] != catalog.MetricAir {
		t.Errorf("heat not removed: %v", st.ActiveLayers)
	}

	if _, err := mv.ToggleLayer("noise"); !errors.Is(err, catalog.ErrUnknownMetricType) {
		t.Errorf("unknown layer error = %v", err)
	}

	if mv.ToggleMode().Mode != ModeCitizen || mv.ToggleMode().Mode != ModeSatellite {
		t.Error("ToggleMode should alternate")
	}
}
