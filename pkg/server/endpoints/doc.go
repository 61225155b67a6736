// Package endpoints implements the HTTP API.
//
// Each resource gets one file with a RegisterXEndpoints function and
// handler closures over the stores it needs. Handlers orchestrate at most
// two store calls: session check, optional not-found or password check,
// then the persistence call. Store and hash failures map uniformly to 500
// with the detail logged, never returned to the client.
package endpoints
