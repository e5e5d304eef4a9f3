package workers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/mock"
	"github.com/MKhiriev/go-tube-accounts/internal/store"
)

func TestStagingJanitor_SweepsUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	staging := mock.NewMockStagingStorage(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	staging.EXPECT().SweepOlderThan(gomock.Any(), time.Hour).DoAndReturn(
		func(context.Context, time.Duration) (int, error) {
			calls++
			if calls == 3 {
				cancel()
			}
			return 1, nil
		}).Times(3)

	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, registry)

	j := NewStagingJanitor(staging, m, time.Hour, time.Millisecond, logger.Nop())

	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}

	expected := `
# HELP accounts_staging_files_swept_total Abandoned staged files removed by the janitor.
# TYPE accounts_staging_files_swept_total counter
accounts_staging_files_swept_total 3
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "accounts_staging_files_swept_total"))
}

func TestStagingJanitor_SweepErrorDoesNotStopWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	staging := mock.NewMockStagingStorage(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		staging.EXPECT().SweepOlderThan(gomock.Any(), time.Minute).Return(0, errors.New("permission denied")),
		staging.EXPECT().SweepOlderThan(gomock.Any(), time.Minute).DoAndReturn(
			func(context.Context, time.Duration) (int, error) {
				cancel()
				return 0, nil
			}),
	)

	j := NewStagingJanitor(staging, nil, time.Minute, time.Millisecond, logger.Nop())
	j.Run(ctx)
}

func TestStagingJanitor_RemovesStaleFilesOnDisk(t *testing.T) {
	dir := t.TempDir()
	staging, err := store.NewFileStagingStorage(dir, logger.Nop())
	require.NoError(t, err)

	stale := filepath.Join(dir, "stale.png")
	fresh := filepath.Join(dir, "fresh.png")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("y"), 0o600))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewStagingJanitor(staging, nil, time.Hour, time.Minute, logger.Nop()).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(stale)
		return os.IsNotExist(err)
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.FileExists(t, fresh)
}
