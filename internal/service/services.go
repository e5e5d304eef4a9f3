package service

import (
	"github.com/MKhiriev/go-tube-accounts/internal/adapter"
	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/crypto"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/store"
)

type Services struct {
	AuthService    AuthService
	TokenService   TokenService
	MediaService   MediaService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, mediaAdapter adapter.MediaAdapter, metrics *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, err
	}

	passwordHasher := crypto.NewPasswordHasher(cfg.App.PasswordHashCost, cfg.App.HashConcurrency)
	tokenService := NewTokenService(cfg.App, logger)
	mediaService := NewMediaService(mediaAdapter, storages.StagingStorage, metrics, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, passwordHasher, tokenService, mediaService, metrics, cfg.App, logger),
		TokenService:   tokenService,
		MediaService:   mediaService,
		AppInfoService: appInfoService,
	}, nil
}
