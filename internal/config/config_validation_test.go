package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *StructuredConfig {
	t.Helper()
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, requiredConfig())
	cfg, err := b.build()
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "missing access secret", mutate: func(c *StructuredConfig) { c.App.AccessTokenSecret = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "equal secrets", mutate: func(c *StructuredConfig) { c.App.RefreshTokenSecret = c.App.AccessTokenSecret }, wantErr: ErrInvalidAppConfigs},
		{name: "zero access duration", mutate: func(c *StructuredConfig) { c.App.AccessTokenDuration = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "missing hash key", mutate: func(c *StructuredConfig) { c.App.HashKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "cost too low", mutate: func(c *StructuredConfig) { c.App.PasswordHashCost = 2 }, wantErr: ErrInvalidAppConfigs},
		{name: "cost too high", mutate: func(c *StructuredConfig) { c.App.PasswordHashCost = 40 }, wantErr: ErrInvalidAppConfigs},
		{name: "bad log level", mutate: func(c *StructuredConfig) { c.App.LogLevel = "loud" }, wantErr: ErrInvalidAppConfigs},
		{name: "missing dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "missing staging dir", mutate: func(c *StructuredConfig) { c.Storage.Files.StagingDir = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "staging ttl below request timeout", mutate: func(c *StructuredConfig) {
			c.Storage.Files.StagingTTL = time.Second
			c.Server.RequestTimeout = 5 * time.Second
		}, wantErr: ErrInvalidStorageConfigs},
		{name: "staging ttl equal to upload timeout", mutate: func(c *StructuredConfig) {
			c.Storage.Files.StagingTTL = 10 * time.Second
			c.Server.RequestTimeout = 5 * time.Second
			c.Adapter.Media.RequestTimeout = 10 * time.Second
		}, wantErr: ErrInvalidStorageConfigs},
		{name: "missing http address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "missing media key", mutate: func(c *StructuredConfig) { c.Adapter.Media.APIKey = "" }, wantErr: ErrInvalidAdapterConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
