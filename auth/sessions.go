// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Display names are counted in runes after trimming.
const (
	MinDisplayName = 2
	MaxDisplayName = 50
)

type Viewer struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	SignedInAt  time.Time `json:"signed_in_at"`
}

// Sessions maps viewer tokens to signed-in viewers. Sessions live only in
// process memory.
type Sessions struct {
	mu     sync.RWMutex
	salt   string
	byHash map[string]Viewer
	now    func() time.Time
}

func NewSessions(salt string) *Sessions {
	return &Sessions{
		salt:   salt,
		byHash: make(map[string]Viewer),
		now:    time.Now,
	}
}

// Login signs a viewer in and returns the bearer token for later requests.
func (s *Sessions) Login(displayName string) (Viewer, string, error) {
	displayName = strings.TrimSpace(displayName)
	if n := utf8.RuneCountInString(displayName); n < MinDisplayName || n > MaxDisplayName {
		return Viewer{}, "", ErrInvalidDisplayName
	}

	id, err := GenerateID(8)
	if err != nil {
		return Viewer{}, "", err
	}
	token, err := GenerateViewerToken()
	if err != nil {
		return Viewer{}, "", err
	}

	v := Viewer{ID: id, DisplayName: displayName, SignedInAt: s.now()}

	s.mu.Lock()
	s.byHash[HashToken(token, s.salt)] = v
	s.mu.Unlock()

	slog.Info("viewer signed in", "viewer_id", v.ID)
	return v, token, nil
}

// Logout ends the session behind token.
func (s *Sessions) Logout(token string) (Viewer, error) {
	key := HashToken(token, s.salt)

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.byHash[key]
	if !ok {
		return Viewer{}, ErrInvalidToken
	}
	delete(s.byHash, key)

	slog.Info("viewer signed out", "viewer_id", v.ID)
	return v, nil
}

// CurrentUser returns the viewer for token, or nil when signed out.
func (s *Sessions) CurrentUser(token string) *Viewer {
	if token == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byHash[HashToken(token, s.salt)]
	if !ok {
		return nil
	}
	return &v
}
