// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
)

// Storages groups every storage component the service layer depends on.
type Storages struct {
	UserRepository UserRepository
	StagingStorage StagingStorage

	db *DB
}

// NewStorages initialises the storage layer:
//  1. Opens the credential store selected by the DSN scheme
//     (PostgreSQL or SQLite).
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Prepares the local media staging directory.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := connect(ctx, cfg.DB.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	staging, err := NewFileStagingStorage(cfg.Files.StagingDir, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		StagingStorage: staging,
		db:             db,
	}, nil
}

// Ping checks that the credential store is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return errors.New("storages are not connected")
	}
	return s.db.PingContext(ctx)
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func connect(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	dialect, source, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	if dialect == dialectPostgres {
		return NewConnectPostgres(ctx, source, log)
	}
	return NewConnectSQLite(ctx, source, log)
}

// parseDSN picks the backend from the DSN and returns the driver-level
// data source:
//   - postgres://… and postgresql://… go to pgx unchanged;
//   - sqlite://<path> goes to SQLite as <path>;
//   - file:… URIs and paths ending in .db / .sqlite go to SQLite unchanged.
func parseDSN(dsn string) (dialect, source string, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return dialectPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		source = strings.TrimPrefix(dsn, "sqlite://")
		if source == "" {
			return "", "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDSN)
		}
		return dialectSQLite, source, nil
	case strings.HasPrefix(dsn, "file:"),
		strings.HasSuffix(dsn, ".db"),
		strings.HasSuffix(dsn, ".sqlite"):
		return dialectSQLite, dsn, nil
	}

	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
}

// redactDSN drops everything after the scheme so credentials never reach logs.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "…"
	}
	return "…"
}
