// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package capture runs the camera side of a mission photo submission.

# Session Phases

A Session moves through a fixed set of phases:

	idle → requesting_permission → live ⇄ frozen → idle
	                 ↘ error ← (any device failure)

	Open(ctx, missionID)   idle → requesting_permission → live | error
	Capture()              live → frozen
	Retake()               frozen → live (same stream)
	Submit(ctx)            frozen → idle (hands the frame to the Submitter)
	Close()                any → idle
	ToggleFacing(ctx)      live → live (reacquires the other camera) | error
	Download(name)         frozen only, phase unchanged

Calls outside their phase return ErrInvalidTransition. A second Open on a
session that is not idle returns ErrSessionBusy.

# Failures

Camera failures are recorded as *Error with one of three kinds:

  - CapabilityUnavailable: the platform has no camera
  - PermissionDenied: the viewer refused access
  - DeviceError: acquisition failed, timed out or a snapshot failed

Errors are terminal: the session stays in the error phase until Close.
Nothing is retried.

# Resources

The session is the single owner of its Stream. Submit, Close and every
transition into error release it. Open is bounded by the permission timeout
and can be abandoned by Close; a stream granted after that point is
released as soon as it arrives.

# Adapters

  - SimulatedCamera: grants access and produces PNG test frames
  - NoCamera, DeniedCamera: fixed failure modes
  - DirSaver: writes downloads into a directory
*/
package capture
