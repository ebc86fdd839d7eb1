package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateUp applies the embedded schema migrations in lexical order. Every
// statement uses IF NOT EXISTS so reapplying is harmless.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, ".up.sql")
}

func MigrateDown(db *sql.DB) error {
	return runMigrations(db, ".down.sql")
}

func runMigrations(db *sql.DB, suffix string) error {
	names, err := fs.Glob(migrationsFS, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("storage: list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		script, readErr := migrationsFS.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("storage: read %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(script)); execErr != nil {
			return fmt.Errorf("storage: exec %s: %w", name, execErr)
		}
	}
	return nil
}
