// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Phase is the state of a capture session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRequesting Phase = "requesting_permission"
	PhaseLive       Phase = "live"
	PhaseFrozen     Phase = "frozen"
	PhaseError      Phase = "error"
)

// DefaultPermissionTimeout bounds how long Open waits on the camera.
const DefaultPermissionTimeout = 30 * time.Second

type Options struct {
	Camera            Camera
	Submitter         Submitter
	Saver             Saver
	PermissionTimeout time.Duration
	ViewerID          string
	Facing            Facing
	Now               func() time.Time
}

// State is a read-only view of a session.
type State struct {
	ID          string    `json:"id"`
	MissionID   string    `json:"mission_id,omitempty"`
	Phase       Phase     `json:"phase"`
	Facing      Facing    `json:"facing"`
	HasFrame    bool      `json:"has_frame"`
	ErrorKind   ErrorKind `json:"error_kind,omitempty"`
	ErrorDetail string    `json:"error_detail,omitempty"`
}

// Session drives one camera through a photo submission. It is the only
// owner of its stream; every path out of Live or Frozen releases it.
type Session struct {
	mu        sync.Mutex
	id        string
	camera    Camera
	submitter Submitter
	saver     Saver
	timeout   time.Duration
	viewerID  string
	now       func() time.Time

	phase     Phase
	facing    Facing
	missionID string
	stream    Stream
	frame     *Frame
	err       *Error

	// gen is bumped whenever a pending acquisition must be abandoned.
	gen    uint64
	cancel context.CancelFunc
	closed bool
}

func NewSession(opts Options) *Session {
	s := &Session{
		id:        uuid.NewString(),
		camera:    opts.Camera,
		submitter: opts.Submitter,
		saver:     opts.Saver,
		timeout:   opts.PermissionTimeout,
		viewerID:  opts.ViewerID,
		now:       opts.Now,
		phase:     PhaseIdle,
		facing:    opts.Facing,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultPermissionTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.facing == "" {
		s.facing = FacingRear
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:        s.id,
		MissionID: s.missionID,
		Phase:     s.phase,
		Facing:    s.facing,
		HasFrame:  s.frame != nil,
	}
	if s.err != nil {
		st.ErrorKind = s.err.Kind
		st.ErrorDetail = s.err.Detail
	}
	return st
}

// Open requests the camera for missionID. It blocks until the camera is
// granted, refused, the permission timeout passes, or Close is called.
// A closed session cannot be opened again.
func (s *Session) Open(ctx context.Context, missionID string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		return ErrSessionBusy
	}
	s.missionID = missionID
	s.err = nil

	if s.camera == nil || !s.camera.Supported() {
		e := &Error{Kind: CapabilityUnavailable, Detail: "camera not supported"}
		s.failLocked(e)
		s.mu.Unlock()
		return e
	}

	ctx, cancel := s.beginAcquireLocked(ctx)
	facing := s.facing
	gen := s.gen
	s.setPhaseLocked(PhaseRequesting)
	s.mu.Unlock()

	stream, err := s.acquire(ctx, facing)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		if stream != nil {
			stream.Release()
		}
		return ErrSessionClosed
	}
	s.cancel = nil

	if err != nil {
		e := classify(err)
		s.failLocked(e)
		return e
	}
	s.stream = stream
	s.setPhaseLocked(PhaseLive)
	return nil
}

// Capture freezes a still frame from the live feed.
func (s *Session) Capture() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLive || s.stream == nil {
		return Frame{}, ErrInvalidTransition
	}

	f, err := s.stream.Snapshot()
	if err != nil {
		e := &Error{Kind: DeviceError, Detail: "device unavailable", Err: err}
		s.failLocked(e)
		return Frame{}, e
	}
	f.Facing = s.facing
	if f.CapturedAt.IsZero() {
		f.CapturedAt = s.now()
	}
	s.frame = &f
	s.setPhaseLocked(PhaseFrozen)
	return f, nil
}

// Retake drops the frozen frame and goes back to the same live stream.
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFrozen {
		return ErrInvalidTransition
	}
	s.frame = nil
	s.setPhaseLocked(PhaseLive)
	return nil
}

// Submit hands the frozen frame to the submitter and ends the session.
// Submitter errors are logged only.
func (s *Session) Submit(ctx context.Context) (Submission, error) {
	s.mu.Lock()
	if s.phase != PhaseFrozen {
		s.mu.Unlock()
		return Submission{}, ErrInvalidTransition
	}

	sub := Submission{
		ID:          uuid.NewString(),
		SessionID:   s.id,
		MissionID:   s.missionID,
		ViewerID:    s.viewerID,
		Frame:       *s.frame,
		SubmittedAt: s.now(),
	}
	s.frame = nil
	s.releaseLocked()
	s.setPhaseLocked(PhaseIdle)
	submitter := s.submitter
	s.mu.Unlock()

	if submitter != nil {
		if err := submitter.Submit(ctx, sub); err != nil {
			slog.Error("submission hand-off failed", "error", err, "session_id", sub.SessionID, "mission_id", sub.MissionID)
		}
	}
	return sub, nil
}

// Close ends the session from any phase, cancelling a pending permission
// request and releasing the camera. The session stays idle for good.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.releaseLocked()
	s.frame = nil
	s.err = nil
	s.setPhaseLocked(PhaseIdle)
}

// ToggleFacing swaps to the opposite camera. Only valid while Live.
func (s *Session) ToggleFacing(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != PhaseLive || s.stream == nil {
		s.mu.Unlock()
		return ErrInvalidTransition
	}

	s.releaseLocked()
	next := s.facing.Opposite()
	ctx, cancel := s.beginAcquireLocked(ctx)
	gen := s.gen
	s.mu.Unlock()

	stream, err := s.acquire(ctx, next)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		if stream != nil {
			stream.Release()
		}
		return ErrSessionClosed
	}
	s.cancel = nil

	if err != nil {
		e := classify(err)
		s.failLocked(e)
		return e
	}
	s.stream = stream
	s.facing = next
	slog.Info("capture facing switched", "session_id", s.id, "facing", next)
	return nil
}

// Frame returns the frozen frame.
func (s *Session) Frame() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFrozen {
		return Frame{}, ErrInvalidTransition
	}
	return *s.frame, nil
}

// Download saves the frozen frame without changing phase and returns the
// name it was saved under. An empty name uses SuggestedName; a name with
// path components is rejected.
func (s *Session) Download(name string) (string, error) {
	if name != "" && !validFilename(name) {
		return "", ErrInvalidFilename
	}

	s.mu.Lock()
	if s.phase != PhaseFrozen {
		s.mu.Unlock()
		return "", ErrInvalidTransition
	}
	f := *s.frame
	missionID := s.missionID
	saver := s.saver
	s.mu.Unlock()

	if saver == nil {
		return "", errors.New("no saver configured")
	}
	if name == "" {
		name = SuggestedName(missionID, f)
	}
	if err := saver.Save(name, f); err != nil {
		return "", fmt.Errorf("failed to save frame: %w", err)
	}
	return name, nil
}

func validFilename(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// SuggestedName builds a download filename like heat-patrol-20250601-120000.png.
func SuggestedName(missionID string, f Frame) string {
	ext := "png"
	if i := strings.LastIndex(f.MIMEType, "/"); i >= 0 && i < len(f.MIMEType)-1 {
		ext = f.MIMEType[i+1:]
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	if missionID == "" {
		missionID = "capture"
	}
	return fmt.Sprintf("%s-%s.%s", missionID, f.CapturedAt.Format("20060102-150405"), ext)
}

func (s *Session) beginAcquireLocked(ctx context.Context) (context.Context, context.CancelFunc) {
	s.gen++
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return ctx, cancel
}

// acquire runs RequestAccess under the permission timeout. A stream that
// arrives after the wait was abandoned is released.
func (s *Session) acquire(ctx context.Context, facing Facing) (Stream, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		stream Stream
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		st, err := s.camera.RequestAccess(ctx, facing)
		ch <- result{st, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			if r.stream != nil {
				r.stream.Release()
			}
			return nil, r.err
		}
		return r.stream, nil
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.stream != nil {
				r.stream.Release()
			}
		}()
		return nil, ctx.Err()
	}
}

func (s *Session) releaseLocked() {
	if s.stream != nil {
		s.stream.Release()
		s.stream = nil
	}
}

func (s *Session) failLocked(e *Error) {
	s.releaseLocked()
	s.frame = nil
	s.err = e
	s.setPhaseLocked(PhaseError)
	slog.Warn("capture session failed", "session_id", s.id, "mission_id", s.missionID, "kind", e.Kind, "detail", e.Detail)
}

func (s *Session) setPhaseLocked(p Phase) {
	if s.phase == p {
		return
	}
	slog.Info("capture phase changed", "session_id", s.id, "from", s.phase, "to", p)
	s.phase = p
}
