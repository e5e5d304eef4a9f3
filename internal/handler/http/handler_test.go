package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/mock"
	"github.com/MKhiriev/go-tube-accounts/internal/service"
	"github.com/MKhiriev/go-tube-accounts/models"
)

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

type handlerMocks struct {
	auth    *mock.MockAuthService
	media   *mock.MockMediaService
	appInfo *mock.MockAppInfoService
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 240 * time.Hour,
		},
		Server: config.Server{
			MaxUploadSize: 1 << 20,
		},
	}
}

func newTestHandler(t *testing.T) (*Handler, handlerMocks) {
	return newTestHandlerWithMetrics(t, nil)
}

func newTestHandlerWithMetrics(t *testing.T, m *metrics.Metrics) (*Handler, handlerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := handlerMocks{
		auth:    mock.NewMockAuthService(ctrl),
		media:   mock.NewMockMediaService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:    mocks.auth,
		MediaService:   mocks.media,
		AppInfoService: mocks.appInfo,
	}

	return NewHandler(services, m, testConfig(), logger.Nop()), mocks
}

func aliceView() models.UserView {
	return models.UserView{
		UserID:    "0190f7e4-6c1e-7d6a-9a53-6f2b8f2c1a11",
		Username:  "alice",
		Email:     "a@x.io",
		FullName:  "Alice A",
		AvatarURL: "https://cdn.example/avatar.png",
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func responseCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_TakesLimitsFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RequestTimeout = 5 * time.Second

	h := NewHandler(&service.Services{}, nil, cfg, logger.Nop())

	require.NotNil(t, h)
	assert.Equal(t, 15*time.Minute, h.accessTTL)
	assert.Equal(t, 240*time.Hour, h.refreshTTL)
	assert.Equal(t, int64(1<<20), h.maxUploadSize)
	assert.Equal(t, 5*time.Second, h.requestTimeout)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, nil, testConfig(), logger.Nop())
	h2 := NewHandler(&service.Services{}, nil, testConfig(), logger.Nop())

	assert.NotSame(t, h1, h2)
}

// ─────────────────────────────────────────────
// responses
// ─────────────────────────────────────────────

func TestWriteResponse_SuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeResponse(req, rec, http.StatusCreated, nil, "created")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusCreated), body["status"])
	assert.Equal(t, map[string]any{}, body["data"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, true, body["ok"])
}

func TestWriteError_FailureEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(req, rec, &service.Error{Kind: service.ErrConflict, Message: service.MsgUserAlreadyExists})

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(http.StatusConflict), body["status"])
	assert.Equal(t, service.MsgUserAlreadyExists, body["message"])
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, []any{}, body["details"])
	assert.NotContains(t, body, "data")
}
