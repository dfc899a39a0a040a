package middleware

import (
	"context"
	"net/http"

	"github.com/op/go-logging"

	"distviz/domain/core"
	"distviz/internal/view"
)

// CookieName carries the session ID
const CookieName = "distviz_session"

type sessionKey struct{}

// EnsureSession attaches the caller's view session to the request context, creating
// one and setting the cookie when the request carries no known session
func EnsureSession(store *view.Store, log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id core.SessionID
			if c, err := r.Cookie(CookieName); err == nil {
				parsed, err := core.ParseSessionID(c.Value)
				if err != nil {
					log.Debugf("[EnsureSession] ignoring cookie: %v", err)
				}
				id = parsed
			}

			sess, created := store.Get(id)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    sess.ID.String(),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// WithSession stores a session in ctx
func WithSession(ctx context.Context, sess *view.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom returns the session attached by EnsureSession
func SessionFrom(ctx context.Context) (*view.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*view.Session)
	return sess, ok && sess != nil
}
