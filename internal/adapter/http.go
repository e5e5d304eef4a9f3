package adapter

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/utils"
	"github.com/MKhiriev/go-tube-accounts/models"
)

// mediaHTTPAdapter talks to a Cloudinary-compatible upload API.
type mediaHTTPAdapter struct {
	client *utils.HTTPClient

	cloudName string
	apiKey    string
	apiSecret string
	folder    string

	now    func() time.Time
	logger *logger.Logger
}

// NewMediaAdapter constructs an HTTP implementation of [MediaAdapter].
// It normalises and validates the base URL from cfg.BaseURL and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewMediaAdapter(cfg config.Media, logger *logger.Logger) (MediaAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media base url: %w", err)
	}

	return &mediaHTTPAdapter{
		client:    utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
		now:       time.Now,
		logger:    logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Upload implements [MediaAdapter]. It POSTs the file as multipart form data
// to /v1_1/{cloud}/auto/upload together with a signed set of parameters.
// The secure URL of the result is preferred over the plain one.
func (m *mediaHTTPAdapter) Upload(ctx context.Context, localPath string) (models.UploadResult, error) {
	log := logger.FromContext(ctx)

	params := map[string]string{
		"timestamp": strconv.FormatInt(m.now().Unix(), 10),
	}
	if m.folder != "" {
		params["folder"] = m.folder
	}

	form := make(map[string]string, len(params)+2)
	for k, v := range params {
		form[k] = v
	}
	form["api_key"] = m.apiKey
	form["signature"] = sign(params, m.apiSecret)

	var result models.UploadResult
	resp, err := m.client.R().
		SetContext(ctx).
		SetFile("file", localPath).
		SetFormData(form).
		SetResult(&result).
		SetPathParam("cloud", m.cloudName).
		Post("/v1_1/{cloud}/auto/upload")
	if err != nil {
		log.Err(err).Str("func", "*mediaHTTPAdapter.Upload").Str("file", filepath.Base(localPath)).Msg("upload request failed")
		return models.UploadResult{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*mediaHTTPAdapter.Upload").Int("status", resp.StatusCode()).Msg("media store rejected upload")
		return models.UploadResult{}, err
	}

	if result.Location() == "" {
		return models.UploadResult{}, ErrEmptyMediaURL
	}

	log.Debug().Str("public_id", result.PublicID).Int64("bytes", result.Bytes).Msg("file uploaded")
	return result, nil
}

// sign returns the hex SHA-1 of the alphabetically sorted "k=v" pairs joined
// by "&" with the API secret appended, as Cloudinary expects.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
