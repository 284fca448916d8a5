// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package workspace groups the per-viewer dashboard state.

A Workspace is created from the seed when a viewer signs in and dropped
when they sign out. It holds:

  - Reports: the engagement.Store for likes, comments and overlays
  - Proposals: the viewer's proposal votes
  - Map: satellite/citizen mode and the active metric layers
  - the viewer's mission stats
  - at most one capture.Session

Workspaces never share state, so one viewer's likes never show up for
another.

	m := workspace.NewManager(seed, workspace.Options{Camera: cam})
	w := m.Open(viewer)
	s, err := w.StartCapture(ctx, "heat-patrol")
	...
	m.Drop(viewer.ID) // closes any open capture session
*/
package workspace
