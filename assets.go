package assets

import "embed"

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var MigrationsFS embed.FS

// DefaultCatalog seeds an empty products table.
//
//go:embed catalog.yaml
var DefaultCatalog []byte
