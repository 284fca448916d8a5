// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides viewer sign-in and token generation utilities.

# Viewer Sessions

Sessions is the in-process identity provider. Login returns a random
bearer token; the token's HMAC is the only thing kept in memory:

	sessions := auth.NewSessions(cfg.SessionSalt)
	viewer, token, err := sessions.Login("Maya")
	current := sessions.CurrentUser(token) // nil when signed out
	sessions.Logout(token)

Display names must be 2-50 characters after trimming.

# Viewer Tokens

Viewer tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateViewerToken()

Tokens are URL-safe base64 encoded and sent back in the X-Viewer-Token
header.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(8)  // 16 hex characters

# Token Hashing

	hash := auth.HashToken(token, salt)

Returns the hex HMAC-SHA256 of the token.
*/
package auth
