// Package migrations embeds the schema for every supported driver and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite3/*.sql
var embedMigrations embed.FS

var errNilDB = errors.New("migration error: db is nil")

type dialect struct {
	goose goose.Dialect
	dir   string
}

// dialects is keyed by database/sql driver name.
var dialects = map[string]dialect{
	"pgx":     {goose: goose.DialectPostgres, dir: "postgres"},
	"sqlite3": {goose: goose.DialectSQLite3, dir: "sqlite3"},
}

// Migrate applies every pending migration for driver to db and returns the
// number of migrations applied.
func Migrate(ctx context.Context, db *sql.DB, driver string) (int, error) {
	if db == nil {
		return 0, errNilDB
	}

	d, ok := dialects[driver]
	if !ok {
		return 0, fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	provider, err := newProvider(db, d)
	if err != nil {
		return 0, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migration error: %w", err)
	}
	return len(results), nil
}

func newProvider(db *sql.DB, d dialect) (*goose.Provider, error) {
	sub, err := fs.Sub(embedMigrations, d.dir)
	if err != nil {
		return nil, fmt.Errorf("migration error opening %s migrations: %w", d.dir, err)
	}

	provider, err := goose.NewProvider(d.goose, db, sub)
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return provider, nil
}
