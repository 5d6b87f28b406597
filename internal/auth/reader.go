package auth

import (
	"context"
	"net/http"
	"strings"
)

const CookieName = "session_token"

// TokenFromRequest extracts the raw session token from the session cookie or,
// failing that, a Bearer authorization header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// ReadSession decodes the session carried by r.
func (at *AuthToken) ReadSession(r *http.Request) (*Session, error) {
	return at.VerifyToken(TokenFromRequest(r))
}

type contextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// SessionFromContext returns the session stored by the route guard, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
