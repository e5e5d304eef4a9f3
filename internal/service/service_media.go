package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-tube-accounts/internal/adapter"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/store"
)

type mediaService struct {
	mediaAdapter adapter.MediaAdapter
	staging      store.StagingStorage
	metrics      *metrics.Metrics

	logger *logger.Logger
}

func NewMediaService(mediaAdapter adapter.MediaAdapter, staging store.StagingStorage, metrics *metrics.Metrics, logger *logger.Logger) MediaService {
	return &mediaService{
		mediaAdapter: mediaAdapter,
		staging:      staging,
		metrics:      metrics,
		logger:       logger,
	}
}

func (m *mediaService) Stage(ctx context.Context, originalName string, src io.Reader) (string, error) {
	path, err := m.staging.Stage(ctx, originalName, src)
	if err != nil {
		return "", fmt.Errorf("error staging uploaded file: %w", err)
	}
	return path, nil
}

func (m *mediaService) Ingest(ctx context.Context, stagedPath string) (string, error) {
	if stagedPath == "" {
		return "", nil
	}

	// removal must outlive a cancelled request
	defer m.remove(context.WithoutCancel(ctx), stagedPath)

	start := time.Now()
	result, err := m.mediaAdapter.Upload(ctx, stagedPath)
	m.metrics.MediaUpload(err, time.Since(start))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "mediaService.Ingest").Msg("upload to media store failed")
		return "", fmt.Errorf("%w: %w", ErrMediaUploadFailed, err)
	}

	location := result.Location()
	if location == "" {
		return "", fmt.Errorf("%w: media store returned no url", ErrMediaUploadFailed)
	}

	return location, nil
}

func (m *mediaService) Discard(ctx context.Context, stagedPaths ...string) error {
	if len(stagedPaths) == 0 {
		return nil
	}

	if err := m.staging.Remove(ctx, stagedPaths...); err != nil {
		return fmt.Errorf("error discarding staged files: %w", err)
	}
	return nil
}

func (m *mediaService) remove(ctx context.Context, stagedPath string) {
	if err := m.staging.Remove(ctx, stagedPath); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mediaService.remove").
			Str("path", stagedPath).
			Msg("staged file was not removed")
	}
}
