// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/store"
)

// StagingJanitor removes staged uploads that outlived ttl. Requests always
// clean up after themselves; the janitor covers files left behind by a
// crash or a killed process.
type StagingJanitor struct {
	staging  store.StagingStorage
	metrics  *metrics.Metrics
	ttl      time.Duration
	interval time.Duration
	logger   *logger.Logger
}

func NewStagingJanitor(staging store.StagingStorage, metrics *metrics.Metrics, ttl, interval time.Duration, logger *logger.Logger) *StagingJanitor {
	return &StagingJanitor{
		staging:  staging,
		metrics:  metrics,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately, then every interval until ctx is done.
func (j *StagingJanitor) Run(ctx context.Context) {
	j.logger.Info().
		Dur("ttl", j.ttl).
		Dur("interval", j.interval).
		Msg("staging janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		j.sweep(ctx)

		select {
		case <-ctx.Done():
			j.logger.Info().Msg("staging janitor stopped")
			return
		case <-ticker.C:
		}
	}
}

func (j *StagingJanitor) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	removed, err := j.staging.SweepOlderThan(ctx, j.ttl)
	j.metrics.StagedFilesSwept(removed)

	if err != nil {
		j.logger.Err(err).Int("removed", removed).Msg("staging sweep failed")
		return
	}
	if removed > 0 {
		j.logger.Info().Int("removed", removed).Msg("stale staged files removed")
	}
}
