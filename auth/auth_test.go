// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateViewerToken(t *testing.T) {
	token, err := GenerateViewerToken()
	if err != nil {
		t.Fatalf("GenerateViewerToken() error = %v", err)
	}

	// Should be URL-safe (no padding)
	if strings.Contains(token, "=") {
		t.Error("GenerateViewerToken() contains padding characters")
	}

	// Should be reasonably long (24 bytes encoded)
	if len(token) < 30 {
		t.Errorf("GenerateViewerToken() too short: %d chars", len(token))
	}

	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateViewerToken()
		if err != nil {
			t.Fatalf("GenerateViewerToken() error on iteration %d: %v", i, err)
		}
		if tokens[token] {
			t.Errorf("GenerateViewerToken() produced duplicate token: %s", token)
		}
		tokens[token] = true
	}
}

func TestHashToken(t *testing.T) {
	hash := HashToken("token-a", "salt")
	if len(hash) != 64 {
		t.Errorf("HashToken() length = %d, want 64", len(hash))
	}
	if hash != HashToken("token-a", "salt") {
		t.Error("HashToken() is not deterministic")
	}
	if hash == HashToken("token-b", "salt") {
		t.Error("HashToken() produced same hash for different tokens")
	}
	if hash == HashToken("token-a", "other-salt") {
		t.Error("HashToken() produced same hash for different salts")
	}
}

func TestSessionsLoginLogout(t *testing.T) {
	s := NewSessions("test-session-salt")

	viewer, token, err := s.Login("  Maya  ")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if viewer.DisplayName != "Maya" || viewer.ID == "" {
		t.Errorf("unexpected viewer %+v", viewer)
	}

	current := s.CurrentUser(token)
	if current == nil || current.ID != viewer.ID {
		t.Fatalf("CurrentUser() = %+v, want %s", current, viewer.ID)
	}

	// Raw tokens are never used as map keys.
	if _, ok := s.byHash[token]; ok {
		t.Error("raw token stored in session map")
	}

	if _, err := s.Logout(token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if s.CurrentUser(token) != nil {
		t.Error("CurrentUser() should be nil after logout")
	}
	if _, err := s.Logout(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("second Logout() error = %v, want ErrInvalidToken", err)
	}
}

func TestSessionsRejectBadDisplayName(t *testing.T) {
	s := NewSessions("salt")

	tests := []struct {
		name        string
		displayName string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"too short", "a"},
		{"too long", strings.Repeat("x", MaxDisplayName+1)},
		{"too long in runes", strings.Repeat("é", MaxDisplayName+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := s.Login(tt.displayName); !errors.Is(err, ErrInvalidDisplayName) {
				t.Errorf("Login(%q) error = %v, want ErrInvalidDisplayName", tt.displayName, err)
			}
		})
	}
}

func TestSessionsDisplayNameBounds(t *testing.T) {
	s := NewSessions("salt")

	for _, name := range []string{
		"Jo",
		strings.Repeat("x", MaxDisplayName),
		strings.Repeat("é", MaxDisplayName),
		"  Jo  ",
	} {
		if _, _, err := s.Login(name); err != nil {
			t.Errorf("Login(%q) error = %v", name, err)
		}
	}
}

func TestCurrentUserUnknownToken(t *testing.T) {
	s := NewSessions("salt")
	if s.CurrentUser("") != nil {
		t.Error("empty token should have no user")
	}
	if s.CurrentUser("not-a-token") != nil {
		t.Error("unknown token should have no user")
	}
}

// Benchmark tests
func BenchmarkGenerateID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateID(16)
	}
}

func BenchmarkGenerateViewerToken(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateViewerToken()
	}
}
