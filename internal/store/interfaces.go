package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-tube-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store. It persists [models.User] records
// and the digest of each user's single active refresh token.
type UserRepository interface {
	// FindUserByUsernameOrEmail returns the user whose username equals
	// username or whose email equals email. Empty identifiers are ignored.
	// Returns [ErrNoUserWasFound] when nothing matches.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error)

	// CreateUser inserts user. Returns [ErrUserAlreadyExists] when the
	// username or email is already taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID returns the full record, credential material included.
	FindUserByID(ctx context.Context, userID string) (models.User, error)

	// FindUserViewByID returns the sanitized projection; the password hash
	// and refresh token are never read.
	FindUserViewByID(ctx context.Context, userID string) (models.UserView, error)

	// SetRefreshToken stores digest as the active refresh token; nil clears it.
	SetRefreshToken(ctx context.Context, userID string, digest *string) error

	// SwapRefreshToken replaces the stored digest with next only if it still
	// equals expected. Returns [ErrRefreshTokenMismatch] otherwise.
	SwapRefreshToken(ctx context.Context, userID, expected, next string) error
}

// StagingStorage is the local area where uploaded files wait until they are
// ingested into the remote media store.
type StagingStorage interface {
	// Stage copies src into a new uniquely named file, keeping the extension
	// of originalName, and returns its path.
	Stage(ctx context.Context, originalName string, src io.Reader) (string, error)

	// Remove deletes staged files. Missing files are not an error.
	Remove(ctx context.Context, paths ...string) error

	// SweepOlderThan removes staged files last modified more than ttl ago and
	// returns how many were removed.
	SweepOlderThan(ctx context.Context, ttl time.Duration) (int, error)
}

// ErrorClassificator maps driver-specific errors onto [ErrorClassification]
// values, so repositories stay independent of the SQL backend.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
