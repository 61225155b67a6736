package session

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/v2"

	"editoria/pkg/config"
)

// IdentityKey is the session key under which the logged-in editor's name
// is stored.
const IdentityKey = "editor"

// NewManager builds the session manager used by the server. Session data
// lives in the sessions table; the cookie carries only the opaque token.
// The idle timeout gives the sliding inactivity window: every
// authenticated request that re-puts the identity pushes it forward.
func NewManager(cfg *config.Config, db *sql.DB) *scs.SessionManager {
	manager := scs.New()
	manager.Store = postgresstore.New(db)
	manager.IdleTimeout = cfg.SessionIdleTimeout()
	manager.Lifetime = cfg.SessionLifetime()
	manager.Cookie.Name = cfg.SessionCookieName
	manager.Cookie.SameSite = http.SameSiteLaxMode
	manager.Cookie.Secure = cfg.SessionCookieSecure
	manager.Cookie.Persist = false // session cookie, dropped when the browser closes
	return manager
}
