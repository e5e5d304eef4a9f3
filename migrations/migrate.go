// Package migrations embeds the SQL schema of the credential store and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies every pending embedded migration to db and returns how
// many were applied. dialect is the driver name of the backend ("pgx",
// "postgres" or "sqlite3").
//
// A goose Provider is used instead of the package-level API so that
// databases of different dialects can be migrated concurrently.
func Migrate(ctx context.Context, db *sql.DB, dialect string) (int, error) {
	if db == nil {
		return 0, errors.New("migration error: db is nil")
	}

	gooseDialect, err := providerDialect(dialect)
	if err != nil {
		return 0, fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, embedMigrations)
	if err != nil {
		return 0, fmt.Errorf("migration error creating provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migration error: %w", err)
	}

	return len(results), nil
}

func providerDialect(name string) (goose.Dialect, error) {
	switch name {
	case "pgx", "postgres":
		return goose.DialectPostgres, nil
	case "sqlite3", "sqlite":
		return goose.DialectSQLite3, nil
	}
	return "", fmt.Errorf("unsupported dialect %q", name)
}
