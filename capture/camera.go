// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capture

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Facing selects the physical camera.
type Facing string

const (
	FacingFront Facing = "front"
	FacingRear  Facing = "rear"
)

func (f Facing) Opposite() Facing {
	if f == FacingFront {
		return FacingRear
	}
	return FacingFront
}

// Frame is a still image taken from a live stream.
type Frame struct {
	Data       []byte
	MIMEType   string
	Width      int
	Height     int
	Facing     Facing
	CapturedAt time.Time
}

// Camera is the platform camera capability.
type Camera interface {
	// Supported reports whether the platform has any camera at all.
	Supported() bool
	// RequestAccess asks for permission and opens a stream. It returns
	// ErrPermissionDenied or ErrDeviceUnavailable on failure.
	RequestAccess(ctx context.Context, facing Facing) (Stream, error)
}

// Stream is a live camera feed. Release must be safe to call more than once.
type Stream interface {
	Snapshot() (Frame, error)
	Release()
}

// Submission is what a finished capture hands to the submission endpoint.
type Submission struct {
	ID          string
	SessionID   string
	MissionID   string
	ViewerID    string
	Frame       Frame
	SubmittedAt time.Time
}

// Submitter receives finished captures. The session does not act on the
// result beyond logging it.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// Saver stores a frame under a suggested filename.
type Saver interface {
	Save(name string, frame Frame) error
}

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrDeviceUnavailable = errors.New("device unavailable")

	ErrInvalidTransition = errors.New("operation not allowed in current phase")
	ErrSessionBusy       = errors.New("capture session already open")
	ErrSessionClosed     = errors.New("capture session closed")
	ErrInvalidFilename   = errors.New("filename must not contain a path")
)

type ErrorKind string

const (
	CapabilityUnavailable ErrorKind = "capability_unavailable"
	PermissionDenied      ErrorKind = "permission_denied"
	DeviceError           ErrorKind = "device_error"
)

// Error is the terminal failure recorded on a session.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify maps a camera failure to the session's error taxonomy.
func classify(err error) *Error {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return &Error{Kind: PermissionDenied, Detail: "permission denied", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: DeviceError, Detail: "permission request timed out", Err: err}
	default:
		return &Error{Kind: DeviceError, Detail: "device unavailable", Err: err}
	}
}
