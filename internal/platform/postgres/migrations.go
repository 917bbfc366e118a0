package postgres

import "embed"

// Migrations holds the embedded goose migration files. Embedding them
// keeps the binary self-contained so deployments never depend on a
// migrations directory being present on disk.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path of the migration files inside Migrations.
const MigrationsDir = "migrations"
