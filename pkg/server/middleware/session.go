package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"editoria/pkg/identity"
	"editoria/pkg/session"
)

// SessionAuthenticator is middleware that requires an active session
type SessionAuthenticator struct {
	Sessions *scs.SessionManager
}

// NewSessionAuthenticator creates a new session authenticator middleware
func NewSessionAuthenticator(sessions *scs.SessionManager) *SessionAuthenticator {
	return &SessionAuthenticator{Sessions: sessions}
}

// Middleware returns an HTTP middleware that rejects requests without a
// session identity. On success the identity is re-put into the session,
// sliding the inactivity window, and placed on the request context. On
// failure the session is destroyed before responding 401.
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		name := a.Sessions.GetString(ctx, session.IdentityKey)
		if name == "" {
			_ = a.Sessions.Destroy(ctx)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Authentication required"))
			return
		}

		a.Sessions.Put(ctx, session.IdentityKey, name)

		r = r.WithContext(identity.Set(ctx, &identity.Identity{EditorName: name}))
		next.ServeHTTP(w, r)
	})
}
