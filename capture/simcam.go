// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"sync/atomic"
	"time"
)

// Camera modes accepted by NewCamera.
const (
	ModeSimulated = "simulated"
	ModeNone      = "none"
	ModeDeny      = "deny"
)

// NewCamera returns the camera adapter for mode.
func NewCamera(mode string, delay time.Duration) (Camera, error) {
	switch mode {
	case ModeSimulated, "":
		return &SimulatedCamera{Delay: delay}, nil
	case ModeNone:
		return NoCamera{}, nil
	case ModeDeny:
		return DeniedCamera{}, nil
	}
	return nil, fmt.Errorf("unknown camera mode %q (want simulated, none or deny)", mode)
}

// SimulatedCamera grants every request after Delay and produces a PNG test
// pattern, tinted by facing, for each snapshot.
type SimulatedCamera struct {
	Delay  time.Duration
	Width  int
	Height int

	open atomic.Int64
}

// OpenStreams reports how many granted streams have not been released.
func (c *SimulatedCamera) OpenStreams() int {
	return int(c.open.Load())
}

func (c *SimulatedCamera) Supported() bool { return true }

func (c *SimulatedCamera) RequestAccess(ctx context.Context, facing Facing) (Stream, error) {
	if c.Delay > 0 {
		t := time.NewTimer(c.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	w, h := c.Width, c.Height
	if w <= 0 || h <= 0 {
		w, h = 320, 240
	}
	c.open.Add(1)
	return &simStream{cam: c, facing: facing, width: w, height: h}, nil
}

type simStream struct {
	mu       sync.Mutex
	cam      *SimulatedCamera
	facing   Facing
	width    int
	height   int
	seq      int
	released bool
}

func (s *simStream) Snapshot() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return Frame{}, ErrDeviceUnavailable
	}
	s.seq++

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	tint := uint8(40)
	if s.facing == FacingFront {
		tint = 200
	}
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / s.width),
				G: uint8((y*255/s.height + s.seq*16) % 256),
				B: tint,
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Frame{}, fmt.Errorf("encoding frame: %w", err)
	}
	return Frame{
		Data:     buf.Bytes(),
		MIMEType: "image/png",
		Width:    s.width,
		Height:   s.height,
	}, nil
}

func (s *simStream) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.released {
		s.released = true
		s.cam.open.Add(-1)
	}
}

// NoCamera is a platform without any camera.
type NoCamera struct{}

func (NoCamera) Supported() bool { return false }

func (NoCamera) RequestAccess(context.Context, Facing) (Stream, error) {
	return nil, ErrDeviceUnavailable
}

// DeniedCamera refuses every permission request.
type DeniedCamera struct{}

func (DeniedCamera) Supported() bool { return true }

func (DeniedCamera) RequestAccess(context.Context, Facing) (Stream, error) {
	return nil, ErrPermissionDenied
}
