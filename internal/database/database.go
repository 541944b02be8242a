package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/magiccup/fantastat/internal/league"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// InitDB opens the league database and brings the schema up to date.
// For a local-only database dbPath is the filename (":memory:" works for
// tests); when primaryURL is set the remote Turso database is used instead.
// The returned teardown closes the connection.
func InitDB(dbPath, primaryURL, authToken string) (*sql.DB, func(), error) {
	var dsn string
	if primaryURL == "" {
		log.Info("Initializing local SQLite database", "path", dbPath)
		dsn = "file:" + dbPath
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		dsn = primaryURL + "?authToken=" + authToken
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open database: %v", league.ErrStoreUnavailable, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("%w: failed to enable foreign keys: %v", league.ErrStoreUnavailable, err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("%w: schema not initialized, check the DB path is writable so migrations can be applied: %v", league.ErrStoreUnavailable, err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return db, teardown, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return err
	}
	log.Info("Database schema up to date")
	return nil
}
