package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"editoria/pkg/config"
	"editoria/pkg/creds"
	"editoria/pkg/server"
	"editoria/pkg/server/store"
)

func testConfig() *config.Config {
	return &config.Config{
		BindAddress:               "127.0.0.1",
		Port:                      8080,
		SessionIdleTimeoutSeconds: 300,
		SessionLifetimeSeconds:    43200,
		SessionCookieName:         "editoria_session",
	}
}

// newTestServer builds a server backed by mock stores and an in-memory
// session manager, with all endpoints registered.
func newTestServer(t *testing.T, cfg *config.Config) (*server.Server, *MockEditorsStore, *MockArticlesStore, *MockHealthStore) {
	t.Helper()

	if cfg == nil {
		cfg = testConfig()
	}

	sessions := scs.New()
	sessions.IdleTimeout = cfg.SessionIdleTimeout()
	sessions.Lifetime = cfg.SessionLifetime()
	sessions.Cookie.Name = cfg.SessionCookieName

	s := server.NewServer(nil, sessions, cfg, "127.0.0.1:0")

	editors := NewMockEditorsStore()
	articles := NewMockArticlesStore()
	health := NewMockHealthStore()
	s.EditorsStore = editors
	s.ArticlesStore = articles
	s.HealthStore = health

	RegisterAll(s)

	return s, editors, articles, health
}

// testEditor builds an editor row whose stored digest matches the given
// plaintext password.
func testEditor(t *testing.T, id int64, name, callName, password string) *store.Editor {
	t.Helper()

	digest, err := creds.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &store.Editor{
		EditorID:       id,
		EditorName:     name,
		EditorCallName: callName,
		Password:       digest,
	}
}

// doRequest runs a request through the full handler chain, attaching any
// session cookies, and returns the response.
func doRequest(s *server.Server, method, path, body string, cookies []*http.Cookie) *http.Response {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w.Result()
}

// login authenticates the given editor and returns the session cookies.
// The editor must already be registered with the mock store.
func login(t *testing.T, s *server.Server, name, password string) []*http.Cookie {
	t.Helper()

	body := `{"editor_name": "` + name + `", "password": "` + password + `"}`
	resp := doRequest(s, "POST", "/user/login", body, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("login did not set a session cookie")
	}
	return cookies
}
