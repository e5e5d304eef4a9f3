package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
)

// maxExtLen caps the extension copied from a client file name.
const maxExtLen = 10

// fileStagingStorage is the local-disk implementation of [StagingStorage].
// Every staged file gets a fresh UUID name, so two uploads with the same
// client file name never collide.
type fileStagingStorage struct {
	dir    string
	logger *logger.Logger
}

// NewFileStagingStorage returns a [StagingStorage] rooted at dir, creating
// the directory when missing.
func NewFileStagingStorage(dir string, logger *logger.Logger) (StagingStorage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("error resolving staging dir: %w", err)
	}

	if err = os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("error creating staging dir: %w", err)
	}

	logger.Debug().Str("dir", abs).Msg("staging storage ready")
	return &fileStagingStorage{dir: abs, logger: logger}, nil
}

// Stage implements [StagingStorage]. A partially written file is removed
// before the error is returned.
func (s *fileStagingStorage) Stage(ctx context.Context, originalName string, src io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	path := filepath.Join(s.dir, uuid.NewString()+safeExt(originalName))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		log.Err(err).Str("func", "*fileStagingStorage.Stage").Msg("error creating staged file")
		return "", fmt.Errorf("error creating staged file: %w", err)
	}

	_, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if err = errors.Join(copyErr, closeErr); err != nil {
		log.Err(err).Str("func", "*fileStagingStorage.Stage").Msg("error writing staged file")
		_ = os.Remove(path)
		return "", fmt.Errorf("error writing staged file: %w", err)
	}

	return path, nil
}

// Remove implements [StagingStorage]. Paths outside the staging directory
// are refused with [ErrOutsideStagingArea]; the remaining paths are still
// processed.
func (s *fileStagingStorage) Remove(ctx context.Context, paths ...string) error {
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil || filepath.Dir(abs) != s.dir {
			errs = append(errs, fmt.Errorf("%w: %s", ErrOutsideStagingArea, path))
			continue
		}

		if err = os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("error removing staged file: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileStagingStorage.Remove").Msg("error removing staged files")
		return err
	}

	return nil
}

// SweepOlderThan implements [StagingStorage].
func (s *fileStagingStorage) SweepOlderThan(ctx context.Context, ttl time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("error reading staging dir: %w", err)
	}

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return removed, err
		}
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed concurrently
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err = os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Err(err).Str("file", entry.Name()).Msg("error sweeping staged file")
			continue
		}
		removed++
	}

	return removed, nil
}

func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
