// Package config loads Editoria configuration.
//
// Values resolve in three layers: built-in defaults, then the YAML config
// file (EDITORIA_CONFIG_PATH, default /etc/editoria/editoria.yml), then
// EDITORIA_* environment variables. The source of every attribute is
// tracked so `editoriactl configuration show` can report where each value
// came from.
//
// DATABASE_URL is deliberately not part of this package; the database
// connection string stays a plain environment value read by pkg/db.
package config
