// Package db establishes the shared GORM/PostgreSQL connection. The
// underlying pool is the only process-wide mutable handle in the service;
// it is created before the server starts and closed on shutdown.
package db
