package endpoints

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"

	"editoria/pkg/config"
	"editoria/pkg/identity"
	"editoria/pkg/server"
	"editoria/pkg/server/middleware"
	"editoria/pkg/server/store"
)

// ArticleResponse represents an article in API responses
type ArticleResponse struct {
	ID       int64   `json:"id"`
	AuthorID int64   `json:"author_id"`
	Title    string  `json:"title"`
	Content  *string `json:"content"`
}

// TitleResponse is one entry of the title listing
type TitleResponse struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`
}

// CreateArticleRequest is the article creation payload. The author is
// always the session's editor, never taken from the body.
type CreateArticleRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// UpdateArticleRequest is the article update payload
type UpdateArticleRequest struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// DeleteArticleRequest is the article deletion payload
type DeleteArticleRequest struct {
	ID int64 `json:"id"`
}

// RegisterArticlesEndpoints registers the article endpoints. Every route
// requires an active session.
func RegisterArticlesEndpoints(s *server.Server) {
	editors := s.EditorsStore
	articles := s.ArticlesStore
	cfg := s.Config

	sessionAuth := middleware.NewSessionAuthenticator(s.Sessions)
	articlesRouter := s.Router.PathPrefix("/article").Subrouter()
	articlesRouter.Use(sessionAuth.Middleware)

	articlesRouter.HandleFunc("/add", handleCreateArticle(editors, articles)).Methods("POST")
	articlesRouter.HandleFunc("/titles", handleGetTitles(editors, articles)).Methods("GET")
	articlesRouter.HandleFunc("/get/{article_id}", handleGetArticle(articles)).Methods("GET")
	articlesRouter.HandleFunc("/html/{article_id}", handleRenderArticle(articles)).Methods("GET")
	articlesRouter.HandleFunc("/update", handleUpdateArticle(editors, articles, cfg)).Methods("PUT")
	articlesRouter.HandleFunc("/delete", handleDeleteArticle(editors, articles, cfg)).Methods("POST")
}

// currentEditor resolves the session identity to an editor row. The
// session may outlive the row, so absence is a real case, not a bug.
func currentEditor(r *http.Request, editors store.EditorsStore) (*store.Editor, error) {
	id, ok := identity.Get(r.Context())
	if !ok {
		return nil, nil
	}
	return editors.FindEditor(id.EditorName)
}

func articleID(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["article_id"], 10, 64)
}

func handleCreateArticle(editors store.EditorsStore, articles store.ArticlesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editor, err := currentEditor(r, editors)
		if err != nil {
			log.Printf("find editor: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if editor == nil {
			http.Error(w, "no editor found for session", http.StatusNotFound)
			return
		}

		var req CreateArticleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		if err := articles.AddArticle(editor.EditorID, req.Title, req.Content); err != nil {
			log.Printf("add article: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}

func handleGetTitles(editors store.EditorsStore, articles store.ArticlesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		editor, err := currentEditor(r, editors)
		if err != nil {
			log.Printf("find editor: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if editor == nil {
			http.Error(w, "no editor found for session", http.StatusNotFound)
			return
		}

		list, err := articles.GetTitles(editor.EditorID)
		if err != nil {
			log.Printf("get titles: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		titles := make([]TitleResponse, 0, len(list))
		for _, article := range list {
			titles = append(titles, TitleResponse{
				ArticleID: article.ID,
				Title:     article.Title,
			})
		}

		respondWithJSON(w, http.StatusOK, titles)
	}
}

func handleGetArticle(articles store.ArticlesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := articleID(r)
		if err != nil {
			http.Error(w, "malformed article id", http.StatusBadRequest)
			return
		}

		article, err := articles.FindArticle(id)
		if err != nil {
			log.Printf("find article: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if article == nil {
			http.Error(w, "no article found with that id", http.StatusNotFound)
			return
		}

		respondWithJSON(w, http.StatusOK, ArticleResponse{
			ID:       article.ID,
			AuthorID: article.AuthorID,
			Title:    article.Title,
			Content:  article.Content,
		})
	}
}

func handleRenderArticle(articles store.ArticlesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := articleID(r)
		if err != nil {
			http.Error(w, "malformed article id", http.StatusBadRequest)
			return
		}

		article, err := articles.FindArticle(id)
		if err != nil {
			log.Printf("find article: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if article == nil {
			http.Error(w, "no article found with that id", http.StatusNotFound)
			return
		}

		var content string
		if article.Content != nil {
			content = *article.Content
		}

		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(content), &buf); err != nil {
			log.Printf("render article %d: %v", article.ID, err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

// checkOwnership applies the enforce_article_ownership policy for a
// mutation of the given article id. It writes the response and returns
// false when the request must not proceed.
func checkOwnership(w http.ResponseWriter, r *http.Request, editors store.EditorsStore, articles store.ArticlesStore, id int64) bool {
	editor, err := currentEditor(r, editors)
	if err != nil {
		log.Printf("find editor: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if editor == nil {
		http.Error(w, "no editor found for session", http.StatusNotFound)
		return false
	}

	article, err := articles.FindArticle(id)
	if err != nil {
		log.Printf("find article: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if article == nil {
		http.Error(w, "no article found with that id", http.StatusNotFound)
		return false
	}
	if article.AuthorID != editor.EditorID {
		http.Error(w, "article belongs to another editor", http.StatusForbidden)
		return false
	}
	return true
}

func handleUpdateArticle(editors store.EditorsStore, articles store.ArticlesStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateArticleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		if cfg.EnforceArticleOwnership && !checkOwnership(w, r, editors, articles, req.ID) {
			return
		}

		if err := articles.UpdateArticle(req.ID, req.Title, req.Content); err != nil {
			log.Printf("update article: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDeleteArticle(editors store.EditorsStore, articles store.ArticlesStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteArticleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		if cfg.EnforceArticleOwnership && !checkOwnership(w, r, editors, articles, req.ID) {
			return
		}

		if err := articles.DeleteArticle(req.ID); err != nil {
			log.Printf("delete article: %v", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
