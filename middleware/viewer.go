// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/streetpulse/auth"
	"github.com/danielhkuo/streetpulse/models"
)

type viewerKey struct{}

// ViewerToken reads the viewer token from X-Viewer-Token, falling back to
// an Authorization bearer token.
func ViewerToken(r *http.Request) string {
	if tok := r.Header.Get(models.ViewerTokenHeader); tok != "" {
		return tok
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// RequireViewer rejects requests without a signed-in viewer and stores the
// viewer in the request context.
func RequireViewer(sessions *auth.Sessions) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			v := sessions.CurrentUser(ViewerToken(r))
			if v == nil {
				ErrorResponse(w, http.StatusUnauthorized, "sign in required")
				return
			}
			next(w, r.WithContext(WithViewer(r.Context(), *v)))
		}
	}
}

func WithViewer(ctx context.Context, v auth.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

func ViewerFromContext(ctx context.Context) (auth.Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(auth.Viewer)
	return v, ok
}
