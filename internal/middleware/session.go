package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/users-admin/internal/api/httpx"
	"github.com/baharkarakas/users-admin/internal/auth"
)

const SessionCookie = "session"

type sessionKey struct{}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom reports the session attached by SessionMiddleware.Load.
func SessionFrom(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(auth.Session)
	return s, ok
}

type SessionMiddleware struct {
	Gate *auth.Gate
}

func NewSessionMiddleware(g *auth.Gate) *SessionMiddleware {
	return &SessionMiddleware{Gate: g}
}

// Load attaches the session from the cookie or a Bearer header when it verifies.
// Requests without a valid session pass through unauthenticated.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := tokenFrom(r)
		if tok == "" {
			next.ServeHTTP(w, r)
			return
		}
		s, err := m.Gate.Verify(tok)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequirePage sends unauthenticated browsers to the login page.
func RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAPI answers unauthenticated API calls with 401.
func RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFrom(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid session", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFrom(r *http.Request) string {
	if ah := r.Header.Get("Authorization"); len(ah) > 7 && strings.EqualFold(ah[:7], "bearer ") {
		return strings.TrimSpace(ah[7:])
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
