package endpoints

import (
	"editoria/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterEditorsEndpoints(srv)
	RegisterArticlesEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
