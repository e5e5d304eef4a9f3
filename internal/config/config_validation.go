// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	app := cfg.App
	switch {
	case app.AccessTokenSecret == "" || app.RefreshTokenSecret == "":
		return fmt.Errorf("%w: token secrets are required", ErrInvalidAppConfigs)
	case app.AccessTokenSecret == app.RefreshTokenSecret:
		return fmt.Errorf("%w: access and refresh token secrets must differ", ErrInvalidAppConfigs)
	case app.AccessTokenDuration <= 0 || app.RefreshTokenDuration <= 0:
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	case app.HashKey == "":
		return fmt.Errorf("%w: hash key is required", ErrInvalidAppConfigs)
	case app.PasswordHashCost < bcrypt.MinCost || app.PasswordHashCost > bcrypt.MaxCost:
		return fmt.Errorf("%w: password hash cost must be in range %d-%d", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	case app.HashConcurrency < 1:
		return fmt.Errorf("%w: hash concurrency must be positive", ErrInvalidAppConfigs)
	}

	if _, err := zerolog.ParseLevel(app.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.StagingDir == "" || cfg.Storage.Files.StagingTTL <= 0 {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.MaxUploadSize <= 0 {
		return ErrInvalidServerConfigs
	}

	media := cfg.Adapter.Media
	if media.BaseURL == "" || media.CloudName == "" || media.APIKey == "" || media.APISecret == "" || media.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	// a staged file must outlive the request that stages it and the upload
	// that consumes it, or the janitor removes it mid-flight
	if ttl := cfg.Storage.Files.StagingTTL; ttl <= cfg.Server.RequestTimeout || ttl <= media.RequestTimeout {
		return fmt.Errorf("%w: staging TTL %s must exceed request timeout %s and upload timeout %s",
			ErrInvalidStorageConfigs, ttl, cfg.Server.RequestTimeout, media.RequestTimeout)
	}

	return nil
}
