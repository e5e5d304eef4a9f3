package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/migrations"
)

// DB is an open credential-store connection together with everything a
// repository needs to talk to it portably: the goose dialect, a squirrel
// builder with the right placeholder format, and an error classifier.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB, db.dialect)
	if err != nil {
		return err
	}

	if applied > 0 {
		db.logger.Info().Int("applied", applied).Str("dialect", db.dialect).Msg("schema migrations applied")
	}
	return nil
}

// Dialect returns the goose dialect name of the backend ("pgx" or "sqlite3").
func (db *DB) Dialect() string {
	return db.dialect
}
