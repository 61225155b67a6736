package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"editoria/pkg/config"
	"editoria/pkg/server/store"
	gormstore "editoria/pkg/server/store/gorm"
)

type Server struct {
	DB       *gorm.DB
	Router   *mux.Router
	Sessions *scs.SessionManager
	Config   *config.Config

	EditorsStore  store.EditorsStore
	ArticlesStore store.ArticlesStore
	HealthStore   store.HealthStore

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	sessions *scs.SessionManager,
	cfg *config.Config,
	addr string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Addr: addr,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	s := &Server{
		DB:            db,
		Router:        router,
		Sessions:      sessions,
		Config:        cfg,
		EditorsStore:  gormstore.NewEditorsStore(db),
		ArticlesStore: gormstore.NewArticlesStore(db),
		HealthStore:   gormstore.NewHealthStore(db),
		srv:           srv,
	}
	srv.Handler = s.Handler()
	return s
}

// Handler returns the full middleware chain: request logging outermost,
// then session load/save, then the router. Session state must be loaded
// before any route-level session middleware runs.
func (s *Server) Handler() http.Handler {
	return handlers.LoggingHandler(os.Stdout, s.Sessions.LoadAndSave(s.Router))
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
