package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type appInfoService struct {
	appVersion string
	store      Pinger

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, store Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		store:      store,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Ping checks the credential store. Without one the service reports ready.
func (s *appInfoService) Ping(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	if err := s.store.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "appInfoService.Ping").Msg("credential store is unreachable")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
