package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
)

func newTestStaging(t *testing.T) (*fileStagingStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "temp")
	s, err := NewFileStagingStorage(dir, logger.Nop())
	require.NoError(t, err)
	return s.(*fileStagingStorage), dir
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

// ── Stage ─────────────────────────────────────────────────────────────────────

func TestStage_WritesUniqueFiles(t *testing.T) {
	s, dir := newTestStaging(t)
	ctx := context.Background()

	p1, err := s.Stage(ctx, "avatar.PNG", strings.NewReader("one"))
	require.NoError(t, err)
	p2, err := s.Stage(ctx, "avatar.PNG", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2, "same client name must not collide")
	assert.Equal(t, ".png", filepath.Ext(p1))
	assert.Equal(t, s.dir, filepath.Dir(p1))

	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStage_StripsPathFromName(t *testing.T) {
	s, _ := newTestStaging(t)

	p, err := s.Stage(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, s.dir, filepath.Dir(p))
	assert.Empty(t, filepath.Ext(p))
}

func TestStage_CopyErrorLeavesNothing(t *testing.T) {
	s, dir := newTestStaging(t)

	_, err := s.Stage(context.Background(), "a.png", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSafeExt(t *testing.T) {
	assert.Equal(t, ".jpg", safeExt("photo.JPG"))
	assert.Equal(t, ".webp", safeExt("dir/photo.webp"))
	assert.Equal(t, "", safeExt("noext"))
	assert.Equal(t, "", safeExt("trailing."))
	assert.Equal(t, "", safeExt("weird.p n g"))
	assert.Equal(t, "", safeExt("long.abcdefghijkl"))
}

// ── Remove ────────────────────────────────────────────────────────────────────

func TestRemove_DeletesAndIgnoresMissing(t *testing.T) {
	s, _ := newTestStaging(t)
	ctx := context.Background()

	p, err := s.Stage(ctx, "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, p, "", filepath.Join(s.dir, "missing.png")))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))

	// idempotent
	assert.NoError(t, s.Remove(ctx, p))
}

func TestRemove_RefusesOutsidePaths(t *testing.T) {
	s, _ := newTestStaging(t)

	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	err := s.Remove(context.Background(), outside)
	assert.ErrorIs(t, err, ErrOutsideStagingArea)

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr, "file outside the staging area must survive")
}

// ── SweepOlderThan ────────────────────────────────────────────────────────────

func TestSweepOlderThan(t *testing.T) {
	s, _ := newTestStaging(t)
	ctx := context.Background()

	old, err := s.Stage(ctx, "old.png", strings.NewReader("x"))
	require.NoError(t, err)
	fresh, err := s.Stage(ctx, "fresh.png", strings.NewReader("x"))
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Mkdir(filepath.Join(s.dir, "subdir"), 0o750))

	removed, err := s.SweepOlderThan(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestSweepOlderThan_CancelledContext(t *testing.T) {
	s, _ := newTestStaging(t)
	_, err := s.Stage(context.Background(), "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.SweepOlderThan(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
