// Package db holds the embedded SQL migrations. They are consumed by
// editoriactl (golang-migrate iofs source) and by the integration tests.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
