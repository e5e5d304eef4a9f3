package config

import (
	"runtime"
	"time"
)

const (
	defaultAccessTokenDuration  = 15 * time.Minute
	defaultRefreshTokenDuration = 10 * 24 * time.Hour
	defaultTokenIssuer          = "go-tube-accounts"
	defaultPasswordHashCost     = 10
	defaultLogLevel             = "debug"
	defaultVersion              = "dev"

	defaultStagingDir = "./public/temp"
	defaultStagingTTL = time.Hour

	defaultRequestTimeout = 30 * time.Second
	defaultMaxUploadSize  = 16 << 20

	defaultMediaBaseURL        = "https://api.cloudinary.com"
	defaultMediaRequestTimeout = 30 * time.Second

	defaultStagingSweepInterval = 10 * time.Minute
)

// defaults returns the values used for every field left empty by all
// configuration sources.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AccessTokenDuration:  defaultAccessTokenDuration,
			RefreshTokenDuration: defaultRefreshTokenDuration,
			TokenIssuer:          defaultTokenIssuer,
			PasswordHashCost:     defaultPasswordHashCost,
			HashConcurrency:      runtime.NumCPU(),
			LogLevel:             defaultLogLevel,
			Version:              defaultVersion,
		},
		Storage: Storage{
			Files: Files{
				StagingDir: defaultStagingDir,
				StagingTTL: defaultStagingTTL,
			},
		},
		Server: Server{
			RequestTimeout: defaultRequestTimeout,
			MaxUploadSize:  defaultMaxUploadSize,
		},
		Adapter: Adapter{
			Media: Media{
				BaseURL:        defaultMediaBaseURL,
				RequestTimeout: defaultMediaRequestTimeout,
			},
		},
		Workers: Workers{
			StagingSweepInterval: defaultStagingSweepInterval,
		},
	}
}
