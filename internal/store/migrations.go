package store

import (
	"database/sql"
	"path"

	assets "github.com/haatos/simple-shop"
	"github.com/haatos/simple-shop/internal"
	"github.com/haatos/simple-shop/internal/settings"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded migrations for driver ("sqlite" or
// "pgx") to db.
func RunMigrations(db *sql.DB, driver string) error {
	dialect, dir := "sqlite", "sqlite"
	if driver == settings.DriverPostgres {
		dialect, dir = "postgres", "postgres"
	}
	goose.SetBaseFS(assets.MigrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.Up(db, path.Join(internal.MigrationsDir, dir))
}
