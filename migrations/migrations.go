// Package migrations embeds the SQL schema migrations for the PostgreSQL
// storage driver.
package migrations

import "embed"

//go:embed sql
var FS embed.FS

// Dir is the embedded directory passed to database.RunMigrations.
const Dir = "sql"
