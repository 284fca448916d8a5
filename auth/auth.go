// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidToken       = errors.New("invalid viewer token")
	ErrInvalidDisplayName = errors.New("display name must be 2-50 characters")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateViewerToken creates a random secure token for a signed-in viewer
func GenerateViewerToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate viewer token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashToken creates a one-way keyed hash of a viewer token.
// Only the hash is kept in memory, never the raw token.
func HashToken(token, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
