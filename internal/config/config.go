// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the accounts
// server. It is populated by merging environment variables, command-line
// flags and an optional JSON file, then completed with defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, hashing and logging parameters.
	App App `envPrefix:"APP_"`

	// Storage holds the credential store DSN and the media staging area.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and request limits.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote media store settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// lifecycle, credential hashing and diagnostics.
type App struct {
	// AccessTokenSecret signs and verifies access tokens.
	// Env: APP_ACCESS_TOKEN_SECRET
	AccessTokenSecret string `env:"ACCESS_TOKEN_SECRET"`

	// AccessTokenDuration is the lifetime of an access token (e.g. "15m").
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenSecret signs and verifies refresh tokens. It must differ
	// from AccessTokenSecret.
	// Env: APP_REFRESH_TOKEN_SECRET
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET"`

	// RefreshTokenDuration is the lifetime of a refresh token (e.g. "240h").
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// TokenIssuer is the "iss" claim embedded in and required from every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// HashKey is the HMAC key used to digest refresh tokens before they are
	// stored.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// PasswordHashCost is the bcrypt cost factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// HashConcurrency caps the number of bcrypt operations running at once.
	// Env: APP_HASH_CONCURRENCY
	HashConcurrency int `env:"HASH_CONCURRENCY"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is exposed via GET /api/v1/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the credential store.
type DB struct {
	// DSN selects the backend by its scheme: "postgres://" / "postgresql://"
	// for PostgreSQL, "sqlite://<path>" or "file:<path>" for SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds the local staging area settings for uploaded media.
type Files struct {
	// StagingDir receives uploaded files until they are ingested.
	// Env: STORAGE_FILES_STAGING_DIR
	StagingDir string `env:"STAGING_DIR"`

	// StagingTTL is the age after which the janitor removes a staged file
	// that no request has claimed.
	// Env: STORAGE_FILES_STAGING_TTL
	StagingTTL time.Duration `env:"STAGING_TTL"`
}

// Server holds network and limit settings for the inbound transports.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the optional TCP address of the gRPC health server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxUploadSize is the multipart body limit in bytes.
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Adapter holds configuration for external integrations.
type Adapter struct {
	Media Media `envPrefix:"MEDIA_"`
}

// Media configures the Cloudinary-compatible upload API.
type Media struct {
	// Env: ADAPTER_MEDIA_BASE_URL
	BaseURL string `env:"BASE_URL"`
	// Env: ADAPTER_MEDIA_CLOUD_NAME
	CloudName string `env:"CLOUD_NAME"`
	// Env: ADAPTER_MEDIA_API_KEY
	APIKey string `env:"API_KEY"`
	// Env: ADAPTER_MEDIA_API_SECRET
	APISecret string `env:"API_SECRET"`
	// Folder is an optional remote folder for all uploads.
	// Env: ADAPTER_MEDIA_FOLDER
	Folder string `env:"FOLDER"`
	// Env: ADAPTER_MEDIA_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// StagingSweepInterval is the period of the staging janitor.
	// Env: WORKERS_STAGING_SWEEP_INTERVAL
	StagingSweepInterval time.Duration `env:"STAGING_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withEnv().
		withFlags().
		withJSON().
		build()
}
