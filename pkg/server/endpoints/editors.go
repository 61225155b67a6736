package endpoints

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"

	"editoria/pkg/config"
	"editoria/pkg/creds"
	"editoria/pkg/identity"
	"editoria/pkg/server"
	"editoria/pkg/server/middleware"
	"editoria/pkg/server/store"
	"editoria/pkg/session"
)

// EditorResponse represents an editor in API responses. Password carries
// the stored digest and is only populated when expose_password_digest is
// set.
type EditorResponse struct {
	EditorID       int64  `json:"editor_id"`
	EditorName     string `json:"editor_name"`
	EditorCallName string `json:"editor_call_name"`
	Password       string `json:"password,omitempty"`
}

// CreateEditorRequest is the registration payload
type CreateEditorRequest struct {
	EditorName     string `json:"editor_name"`
	EditorCallName string `json:"editor_call_name"`
	Password       string `json:"password"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	EditorName string `json:"editor_name"`
	Password   string `json:"password"`
}

// UpdatePasswordRequest carries the current password and its replacement
type UpdatePasswordRequest struct {
	Password      string `json:"password"`
	PasswordAgain string `json:"password_again"`
}

// RegisterEditorsEndpoints registers the editor management endpoints
func RegisterEditorsEndpoints(s *server.Server) {
	editors := s.EditorsStore
	sessions := s.Sessions
	cfg := s.Config

	// Public endpoints
	s.Router.HandleFunc("/user/get/{editor_name}", handleGetEditor(editors, cfg)).Methods("GET")
	s.Router.HandleFunc("/user/add", handleAddEditor(editors)).Methods("POST")
	s.Router.HandleFunc("/user/login", handleLogin(editors, sessions)).Methods("POST")

	// Password change requires an active session
	sessionAuth := middleware.NewSessionAuthenticator(sessions)
	s.Router.Handle("/user/update",
		sessionAuth.Middleware(handleUpdatePassword(editors, sessions))).Methods("PUT")
}

func editorResponse(editor *store.Editor, cfg *config.Config) EditorResponse {
	resp := EditorResponse{
		EditorID:       editor.EditorID,
		EditorName:     editor.EditorName,
		EditorCallName: editor.EditorCallName,
	}
	if cfg.ExposePasswordDigest {
		resp.Password = editor.Password
	}
	return resp
}

func handleGetEditor(editors store.EditorsStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		name := vars["editor_name"]

		editor, err := editors.FindEditor(name)
		if err != nil {
			log.Printf("find editor: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if editor == nil {
			http.Error(w, "no editor found with that name", http.StatusNotFound)
			return
		}

		respondWithJSON(w, http.StatusOK, editorResponse(editor, cfg))
	}
}

func handleAddEditor(editors store.EditorsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateEditorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		digest, err := creds.Hash(req.Password)
		if err != nil {
			log.Printf("hash password: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// The generated id is re-read by the store but not forwarded;
		// registration acknowledges with a bare 201.
		if _, err := editors.AddEditor(req.EditorName, req.EditorCallName, digest); err != nil {
			log.Printf("add editor: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}

func handleLogin(editors store.EditorsStore, sessions *scs.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		editor, err := editors.FindEditor(req.EditorName)
		if err != nil {
			log.Printf("find editor: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if editor == nil {
			http.Error(w, "no editor found with that name", http.StatusNotFound)
			return
		}

		ok, err := creds.Verify(req.Password, editor.Password)
		if err != nil {
			log.Printf("verify password: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		// Rotate the session token on login so a pre-auth token never
		// becomes an authenticated one.
		ctx := r.Context()
		if err := sessions.RenewToken(ctx); err != nil {
			log.Printf("renew session token: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		sessions.Put(ctx, session.IdentityKey, editor.EditorName)

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleUpdatePassword(editors store.EditorsStore, sessions *scs.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, ok := identity.Get(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req UpdatePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		// Re-resolve the session's editor; the row may have vanished
		// since login.
		editor, err := editors.FindEditor(id.EditorName)
		if err != nil {
			log.Printf("find editor: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if editor == nil {
			http.Error(w, "no editor found with that name", http.StatusNotFound)
			return
		}

		valid, err := creds.Verify(req.Password, editor.Password)
		if err != nil {
			log.Printf("verify password: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !valid {
			_ = sessions.Destroy(ctx)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		digest, err := creds.Hash(req.PasswordAgain)
		if err != nil {
			log.Printf("hash password: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := editors.UpdatePassword(editor.EditorName, digest); err != nil {
			log.Printf("update password: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
