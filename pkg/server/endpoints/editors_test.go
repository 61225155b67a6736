package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"editoria/pkg/server/store"
)

func TestGetEditorEndpoint(t *testing.T) {
	t.Run("returns the editor without its digest", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		editors.On("FindEditor", "alice").Return(&store.Editor{
			EditorID:       1,
			EditorName:     "alice",
			EditorCallName: "Alice",
			Password:       "$2a$10$notarealdigest",
		}, nil)

		resp := doRequest(s, "GET", "/user/get/alice", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}

		body, _ := io.ReadAll(resp.Body)
		var editor EditorResponse
		if err := json.Unmarshal(body, &editor); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if editor.EditorID != 1 || editor.EditorName != "alice" || editor.EditorCallName != "Alice" {
			t.Errorf("unexpected editor in response: %+v", editor)
		}
		if strings.Contains(string(body), "password") {
			t.Errorf("response must not carry the password digest: %s", body)
		}
	})

	t.Run("exposes the digest when configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.ExposePasswordDigest = true
		s, editors, _, _ := newTestServer(t, cfg)
		editors.On("FindEditor", "alice").Return(&store.Editor{
			EditorID:   1,
			EditorName: "alice",
			Password:   "$2a$10$notarealdigest",
		}, nil)

		resp := doRequest(s, "GET", "/user/get/alice", "", nil)
		body, _ := io.ReadAll(resp.Body)
		var editor EditorResponse
		if err := json.Unmarshal(body, &editor); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if editor.Password != "$2a$10$notarealdigest" {
			t.Errorf("expected digest in response, got %q", editor.Password)
		}
	})

	t.Run("unknown editor", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		editors.On("FindEditor", "ghost").Return(nil, nil)

		resp := doRequest(s, "GET", "/user/get/ghost", "", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(string(body), "no editor found") {
			t.Errorf("unexpected 404 body: %s", body)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		editors.On("FindEditor", "alice").Return(nil, errors.New("connection refused"))

		resp := doRequest(s, "GET", "/user/get/alice", "", nil)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", resp.StatusCode)
		}
	})
}

func TestAddEditorEndpoint(t *testing.T) {
	t.Run("registers an editor", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		editors.On("AddEditor", "alice", "Alice", mock.AnythingOfType("string")).
			Return(&store.Editor{EditorID: 1, EditorName: "alice"}, nil)

		body := `{"editor_name": "alice", "editor_call_name": "Alice", "password": "p1"}`
		resp := doRequest(s, "POST", "/user/add", body, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", resp.StatusCode)
		}

		respBody, _ := io.ReadAll(resp.Body)
		if len(respBody) != 0 {
			t.Errorf("expected empty body, got %s", respBody)
		}

		// The store receives a digest, never the plaintext.
		digest := editors.Calls[0].Arguments.String(2)
		if digest == "p1" || !strings.HasPrefix(digest, "$2a$") {
			t.Errorf("expected a bcrypt digest, got %q", digest)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		s, _, _, _ := newTestServer(t, nil)

		resp := doRequest(s, "POST", "/user/add", "{not json", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		editors.On("AddEditor", "alice", "Alice", mock.AnythingOfType("string")).
			Return(nil, errors.New("duplicate key value"))

		body := `{"editor_name": "alice", "editor_call_name": "Alice", "password": "p1"}`
		resp := doRequest(s, "POST", "/user/add", body, nil)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", resp.StatusCode)
		}
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		alice := testEditor(t, 1, "alice", "Alice", "p1")
		editors.On("FindEditor", "alice").Return(alice, nil)

		resp := doRequest(s, "POST", "/user/login", `{"editor_name": "alice", "password": "p1"}`, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", resp.StatusCode)
		}
		if len(resp.Cookies()) == 0 {
			t.Error("expected a session cookie")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		alice := testEditor(t, 1, "alice", "Alice", "p1")
		editors.On("FindEditor", "alice").Return(alice, nil)

		resp := doRequest(s, "POST", "/user/login", `{"editor_name": "alice", "password": "wrong"}`, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown editor", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		editors.On("FindEditor", "ghost").Return(nil, nil)

		resp := doRequest(s, "POST", "/user/login", `{"editor_name": "ghost", "password": "p1"}`, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.StatusCode)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		s, _, _, _ := newTestServer(t, nil)

		resp := doRequest(s, "POST", "/user/login", "{not json", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}
	})
}

func TestUpdatePasswordEndpoint(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		s, _, _, _ := newTestServer(t, nil)

		body := `{"password": "p1", "password_again": "p2"}`
		resp := doRequest(s, "PUT", "/user/update", body, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", resp.StatusCode)
		}
	})

	t.Run("changes the password", func(t *testing.T) {
		s, editors, _, _ := newTestServer(t, nil)
		alice := testEditor(t, 1, "alice", "Alice", "p1")
		editors.On("FindEditor", "alice").Return(alice, nil)
		editors.On("UpdatePassword", "alice", mock.AnythingOfType("string")).Return(nil)

		cookies := login(t, s, "alice", "p1")

		body := `{"password": "p1", "password_again": "p2"}`
		resp := doRequest(s, "PUT", "/user/update", body, cookies)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", resp.StatusCode)
		}

		editors.AssertCalled(t, "UpdatePassword", "alice", mock.AnythingOfType("string"))
	})

	t.Run("wrong current password destroys the session", func(t *testing.T) {
		s, editors, articles, _ := newTestServer(t, nil)
		alice := testEditor(t, 1, "alice", "Alice", "p1")
		editors.On("FindEditor", "alice").Return(alice, nil)
		articles.On("GetTitles", int64(1)).Return([]store.Article{}, nil)

		cookies := login(t, s, "alice", "p1")

		body := `{"password": "wrong", "password_again": "p2"}`
		resp := doRequest(s, "PUT", "/user/update", body, cookies)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", resp.StatusCode)
		}
		editors.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)

		// The session is gone; an authenticated route now rejects the
		// old cookie.
		resp = doRequest(s, "GET", "/article/titles", "", cookies)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected status 401 after session destruction, got %d", resp.StatusCode)
		}
	})
}
