package store

import (
	"database/sql"
	"log"
	"runtime"

	"github.com/haatos/simple-shop/internal/settings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func InitDatabase(readonly bool) *sql.DB {
	db, err := sql.Open(settings.Settings.DBDriver, settings.Settings.DataSourceName(readonly))
	if err != nil {
		log.Fatal("fatal error opening database:", err)
	}

	if settings.Settings.IsPostgres() {
		db.SetMaxOpenConns(max(4, runtime.NumCPU()))
		return db
	}

	if readonly {
		db.SetMaxOpenConns(max(4, runtime.NumCPU()))
	} else {
		if _, err := db.Exec("PRAGMA temp_store=memory"); err != nil {
			log.Fatal(err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			log.Fatal(err)
		}
		db.SetMaxOpenConns(1)
	}

	return db
}
