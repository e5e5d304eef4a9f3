package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an insert violates the unique
	// username or email constraint.
	ErrUserAlreadyExists = errors.New("user with username or email already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRefreshTokenMismatch is returned by a compare-and-swap of the
	// refresh token when the stored digest is no longer the expected one.
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")

	// ErrUnsupportedDSN is returned when the DSN scheme names no known backend.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")

	// ErrOutsideStagingArea is returned when a path given for removal does
	// not belong to the staging directory.
	ErrOutsideStagingArea = errors.New("path is outside the staging area")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan user row")
)
