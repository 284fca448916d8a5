// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workspace

import (
	"sync"
	"time"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/catalog"
)

// Manager keeps one Workspace per signed-in viewer.
type Manager struct {
	mu     sync.Mutex
	seed   *catalog.Seed
	opts   Options
	spaces map[string]*Workspace
}

func NewManager(seed *catalog.Seed, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		seed:   seed,
		opts:   opts,
		spaces: make(map[string]*Workspace),
	}
}

func (m *Manager) Seed() *catalog.Seed {
	return m.seed
}

func (m *Manager) Now() time.Time {
	return m.opts.Now()
}

// Open returns the viewer's workspace, creating it from the seed on first use.
func (m *Manager) Open(v auth.Viewer) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w, ok := m.spaces[v.ID]; ok {
		return w
	}
	w := newWorkspace(v, m.seed, m.opts)
	m.spaces[v.ID] = w
	return w
}

func (m *Manager) Get(viewerID string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.spaces[viewerID]
	return w, ok
}

// Drop closes and forgets a viewer's workspace.
func (m *Manager) Drop(viewerID string) {
	m.mu.Lock()
	w, ok := m.spaces[viewerID]
	delete(m.spaces, viewerID)
	m.mu.Unlock()

	if ok {
		w.Close()
	}
}

// Len reports how many workspaces are open.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.spaces)
}
