package http

import (
	"time"

	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// accessTTL and refreshTTL are the cookie lifetimes; they match the
	// token lifetimes.
	accessTTL  time.Duration
	refreshTTL time.Duration

	maxUploadSize  int64
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, metrics *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        metrics,
		accessTTL:      cfg.App.AccessTokenDuration,
		refreshTTL:     cfg.App.RefreshTokenDuration,
		maxUploadSize:  cfg.Server.MaxUploadSize,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
