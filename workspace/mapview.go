// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workspace

import (
	"sync"

	"github.com/danielhkuo/streetpulse/catalog"
)

// ViewMode picks which data the map shows.
type ViewMode string

const (
	ModeSatellite ViewMode = "nasa"
	ModeCitizen   ViewMode = "citizen"
)

type MapState struct {
	Mode         ViewMode             `json:"mode"`
	ActiveLayers []catalog.MetricType `json:"active_layers"`
}

// MapView is the viewer's map toggle state.
type MapView struct {
	mu     sync.Mutex
	mode   ViewMode
	active map[catalog.MetricType]bool
}

func NewMapView(defaults []catalog.MetricType) *MapView {
	m := &MapView{
		mode:   ModeSatellite,
		active: make(map[catalog.MetricType]bool),
	}
	for _, t := range defaults {
		m.active[t] = true
	}
	return m
}

// ToggleMode switches between satellite and citizen data.
func (m *MapView) ToggleMode() MapState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode == ModeSatellite {
		m.mode = ModeCitizen
	} else {
		m.mode = ModeSatellite
	}
	return m.stateLocked()
}

// ToggleLayer turns a layer on or off. Unknown layer names are rejected.
func (m *MapView) ToggleLayer(name string) (MapState, error) {
	t, err := catalog.ParseMetricType(name)
	if err != nil {
		return MapState{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active[t] {
		delete(m.active, t)
	} else {
		m.active[t] = true
	}
	return m.stateLocked(), nil
}

func (m *MapView) State() MapState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *MapView) stateLocked() MapState {
	layers := []catalog.MetricType{}
	for _, t := range catalog.MetricTypes() {
		if m.active[t] {
			layers = append(layers, t)
		}
	}
	return MapState{Mode: m.mode, ActiveLayers: layers}
}
