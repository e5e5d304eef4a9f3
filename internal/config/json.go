package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case JSON keys
// and string durations.
type StructuredJSONConfig struct {
	App struct {
		AccessTokenSecret    string   `json:"access_token_secret"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenSecret   string   `json:"refresh_token_secret"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		TokenIssuer          string   `json:"token_issuer"`
		HashKey              string   `json:"hash_key"`
		PasswordHashCost     int      `json:"password_hash_cost"`
		HashConcurrency      int      `json:"hash_concurrency"`
		LogLevel             string   `json:"log_level"`
		Version              string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			StagingDir string   `json:"staging_dir"`
			StagingTTL Duration `json:"staging_ttl"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxUploadSize  int64    `json:"max_upload_size"`
	} `json:"server,omitempty"`

	Adapter struct {
		Media struct {
			BaseURL        string   `json:"base_url"`
			CloudName      string   `json:"cloud_name"`
			APIKey         string   `json:"api_key"`
			APISecret      string   `json:"api_secret"`
			Folder         string   `json:"folder"`
			RequestTimeout Duration `json:"request_timeout"`
		} `json:"media,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		StagingSweepInterval Duration `json:"staging_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AccessTokenSecret:    jsonCfg.App.AccessTokenSecret,
			AccessTokenDuration:  time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenSecret:   jsonCfg.App.RefreshTokenSecret,
			RefreshTokenDuration: time.Duration(jsonCfg.App.RefreshTokenDuration),
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			HashKey:              jsonCfg.App.HashKey,
			PasswordHashCost:     jsonCfg.App.PasswordHashCost,
			HashConcurrency:      jsonCfg.App.HashConcurrency,
			LogLevel:             jsonCfg.App.LogLevel,
			Version:              jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				StagingDir: jsonCfg.Storage.Files.StagingDir,
				StagingTTL: time.Duration(jsonCfg.Storage.Files.StagingTTL),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxUploadSize:  jsonCfg.Server.MaxUploadSize,
		},
		Adapter: Adapter{
			Media: Media{
				BaseURL:        jsonCfg.Adapter.Media.BaseURL,
				CloudName:      jsonCfg.Adapter.Media.CloudName,
				APIKey:         jsonCfg.Adapter.Media.APIKey,
				APISecret:      jsonCfg.Adapter.Media.APISecret,
				Folder:         jsonCfg.Adapter.Media.Folder,
				RequestTimeout: time.Duration(jsonCfg.Adapter.Media.RequestTimeout),
			},
		},
		Workers: Workers{
			StagingSweepInterval: time.Duration(jsonCfg.Workers.StagingSweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
