package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. A non-positive sweep
// interval disables the staging janitor.
func NewWorkers(storages *store.Storages, metrics *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.Workers.StagingSweepInterval > 0 {
		w.workers = append(w.workers, NewStagingJanitor(
			storages.StagingStorage,
			metrics,
			cfg.Storage.Files.StagingTTL,
			cfg.Workers.StagingSweepInterval,
			logger,
		))
	}

	return w
}

// Run starts every worker in its own goroutine and waits for all of them
// to return after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
