// Package server wires the router, session manager and stores into one
// HTTP server. Endpoints register themselves onto a Server via the
// endpoints package.
package server
