package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/mock"
	"github.com/MKhiriev/go-tube-accounts/internal/store"
	"github.com/MKhiriev/go-tube-accounts/models"
)

func newTestMediaSvc(t *testing.T, ctrl *gomock.Controller) (MediaService, *mock.MockMediaAdapter, *mock.MockStagingStorage) {
	t.Helper()
	mockAdapter := mock.NewMockMediaAdapter(ctrl)
	mockStaging := mock.NewMockStagingStorage(ctrl)

	return NewMediaService(mockAdapter, mockStaging, nil, logger.Nop()), mockAdapter, mockStaging
}

// ── Ingest with mocks ──

func TestMediaService_Ingest_EmptyPath_NoSideEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestMediaSvc(t, ctrl)

	url, err := svc.Ingest(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestMediaService_Ingest_Success_RemovesStagedFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockStaging := newTestMediaSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().Upload(ctx, "/staging/a.png").
			Return(models.UploadResult{URL: "http://cdn/a.png", SecureURL: "https://cdn/a.png"}, nil),
		mockStaging.EXPECT().Remove(gomock.Any(), "/staging/a.png").Return(nil),
	)

	url, err := svc.Ingest(ctx, "/staging/a.png")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/a.png", url)
}

func TestMediaService_Ingest_UploadFails_StillRemoves(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockStaging := newTestMediaSvc(t, ctrl)
	ctx := context.Background()

	uploadErr := errors.New("store unavailable")
	mockAdapter.EXPECT().Upload(ctx, "/staging/a.png").Return(models.UploadResult{}, uploadErr)
	mockStaging.EXPECT().Remove(gomock.Any(), "/staging/a.png").Return(nil)

	url, err := svc.Ingest(ctx, "/staging/a.png")

	assert.Empty(t, url)
	assert.ErrorIs(t, err, ErrMediaUploadFailed)
	assert.ErrorIs(t, err, uploadErr)
}

func TestMediaService_Ingest_NoURL_Fails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockStaging := newTestMediaSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Upload(ctx, "/staging/a.png").Return(models.UploadResult{PublicID: "a"}, nil)
	mockStaging.EXPECT().Remove(gomock.Any(), "/staging/a.png").Return(nil)

	_, err := svc.Ingest(ctx, "/staging/a.png")

	assert.ErrorIs(t, err, ErrMediaUploadFailed)
}

func TestMediaService_Ingest_Panic_StillRemoves(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockStaging := newTestMediaSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Upload(ctx, "/staging/a.png").DoAndReturn(
		func(context.Context, string) (models.UploadResult, error) {
			panic("adapter exploded")
		},
	)
	mockStaging.EXPECT().Remove(gomock.Any(), "/staging/a.png").Return(nil)

	assert.Panics(t, func() {
		_, _ = svc.Ingest(ctx, "/staging/a.png")
	})
}

func TestMediaService_Ingest_RemoveFails_DoesNotChangeResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockStaging := newTestMediaSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Upload(ctx, "/staging/a.png").Return(models.UploadResult{URL: "http://cdn/a.png"}, nil)
	mockStaging.EXPECT().Remove(gomock.Any(), "/staging/a.png").Return(errors.New("permission denied"))

	url, err := svc.Ingest(ctx, "/staging/a.png")

	require.NoError(t, err)
	assert.Equal(t, "http://cdn/a.png", url)
}

func TestMediaService_Ingest_CancelledContext_RemovesWithLiveContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockStaging := newTestMediaSvc(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockAdapter.EXPECT().Upload(gomock.Any(), "/staging/a.png").Return(models.UploadResult{}, context.Canceled)
	mockStaging.EXPECT().Remove(gomock.Any(), "/staging/a.png").DoAndReturn(
		func(removeCtx context.Context, _ ...string) error {
			assert.NoError(t, removeCtx.Err())
			return nil
		},
	)

	_, err := svc.Ingest(ctx, "/staging/a.png")
	assert.ErrorIs(t, err, context.Canceled)
}

// ── Discard ──

func TestMediaService_Discard(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockStaging := newTestMediaSvc(t, ctrl)
	ctx := context.Background()

	mockStaging.EXPECT().Remove(ctx, "/staging/a.png", "/staging/b.png").Return(nil)

	require.NoError(t, svc.Discard(ctx, "/staging/a.png", "/staging/b.png"))
	require.NoError(t, svc.Discard(ctx))
}

func TestMediaService_Discard_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockStaging := newTestMediaSvc(t, ctrl)

	mockStaging.EXPECT().Remove(gomock.Any(), "/staging/a.png").Return(store.ErrOutsideStagingArea)

	err := svc.Discard(context.Background(), "/staging/a.png")
	assert.ErrorIs(t, err, store.ErrOutsideStagingArea)
}

// ── Ingest with a real staging area ──

func TestMediaService_Ingest_RealStaging_FileGoneOnEveryPath(t *testing.T) {
	staging, err := store.NewFileStagingStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockMediaAdapter(ctrl)
	svc := NewMediaService(mockAdapter, staging, nil, logger.Nop())

	okPath, err := staging.Stage(ctx, "ok.png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	failPath, err := staging.Stage(ctx, "fail.png", strings.NewReader("png bytes"))
	require.NoError(t, err)

	mockAdapter.EXPECT().Upload(ctx, okPath).Return(models.UploadResult{SecureURL: "https://cdn/ok.png"}, nil)
	mockAdapter.EXPECT().Upload(ctx, failPath).Return(models.UploadResult{}, errors.New("boom"))

	url, err := svc.Ingest(ctx, okPath)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/ok.png", url)

	_, err = svc.Ingest(ctx, failPath)
	require.Error(t, err)

	for _, p := range []string{okPath, failPath} {
		_, statErr := os.Stat(p)
		assert.True(t, os.IsNotExist(statErr), "staged file %s must be removed", filepath.Base(p))
	}
}

// ── Stage ──

func TestMediaService_Stage_DelegatesToStaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockStaging := newTestMediaSvc(t, ctrl)
	ctx := context.Background()
	src := strings.NewReader("bytes")

	mockStaging.EXPECT().Stage(ctx, "avatar.png", src).Return("/staging/1.png", nil)

	path, err := svc.Stage(ctx, "avatar.png", src)

	require.NoError(t, err)
	assert.Equal(t, "/staging/1.png", path)
}

func TestMediaService_Stage_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockStaging := newTestMediaSvc(t, ctrl)

	diskErr := errors.New("no space left on device")
	mockStaging.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any()).Return("", diskErr)

	_, err := svc.Stage(context.Background(), "avatar.png", strings.NewReader("bytes"))

	assert.ErrorIs(t, err, diskErr)
}
