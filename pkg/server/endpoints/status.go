package endpoints

import (
	"log"
	"net/http"
	"os"

	"editoria/pkg/server"
	"editoria/pkg/server/store"
)

// StatusResponse represents the response from the status endpoint
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoints registers the status endpoint (no auth required)
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus(s.HealthStore)).Methods("GET")
}

func handleStatus(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.CheckConnectivity(); err != nil {
			log.Printf("health check: %v", err)
			respondWithError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}

		version := os.Getenv("EDITORIA_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: version,
		})
	}
}
