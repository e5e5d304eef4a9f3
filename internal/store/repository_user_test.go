package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	return &userRepository{db: newPostgresDB(db, l), logger: l}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userRowColumns = []string{
	"user_id", "username", "email", "full_name", "password_hash",
	"avatar_url", "cover_url", "refresh_token", "created_at", "updated_at",
}

func testUser() models.User {
	return models.User{
		UserID:       "0190f3c4-7d2e-7000-8000-000000000001",
		Username:     "alice",
		Email:        "a@x.io",
		FullName:     "Alice A",
		PasswordHash: "$2a$10$hash",
		AvatarURL:    "https://cdn/avatar.png",
	}
}

// ── FindUserByUsernameOrEmail ─────────────────────────────────────────────────

func TestFindUserByUsernameOrEmail_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow("id-1", "alice", "a@x.io", "Alice A", "hash", "https://cdn/a.png", "", "digest", now, now)

	mock.ExpectQuery(`SELECT user_id, username, email, .* FROM users WHERE \(username = \$1 OR email = \$2\) LIMIT 1`).
		WithArgs("alice", "a@x.io").
		WillReturnRows(rows)

	user, err := repo.FindUserByUsernameOrEmail(context.Background(), "alice", "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "id-1", user.UserID)
	assert.Equal(t, "hash", user.PasswordHash)
	require.NotNil(t, user.RefreshToken)
	assert.Equal(t, "digest", *user.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsernameOrEmail_OnlyEmail(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow("id-1", "alice", "a@x.io", "Alice A", "hash", "https://cdn/a.png", "", nil, now, now)

	mock.ExpectQuery(`FROM users WHERE \(email = \$1\)`).
		WithArgs("a@x.io").
		WillReturnRows(rows)

	user, err := repo.FindUserByUsernameOrEmail(context.Background(), "", "a@x.io")
	require.NoError(t, err)
	assert.Nil(t, user.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsernameOrEmail_NoIdentifiers(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	_, err := repo.FindUserByUsernameOrEmail(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsernameOrEmail_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindUserByUsernameOrEmail(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserByUsernameOrEmail_QueryError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("alice").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByUsernameOrEmail(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ── CreateUser ────────────────────────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.UserID, user.Username, user.Email, user.FullName, user.PasswordHash,
			user.AvatarURL, "", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, created.UserID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)
}

// ── FindUserByID / FindUserViewByID ───────────────────────────────────────────

func TestFindUserByID_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM users WHERE user_id = \$1`).
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("id-1", "alice", "a@x.io", "Alice A", "hash", "a.png", "c.png", nil, now, now))

	user, err := repo.FindUserByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "c.png", user.CoverURL)
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("id-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), "id-1")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserViewByID_NeverSelectsCredentials(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(`^SELECT user_id, username, email, full_name, avatar_url, cover_url, created_at, updated_at FROM users WHERE user_id = \$1$`).
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "username", "email", "full_name", "avatar_url", "cover_url", "created_at", "updated_at",
		}).AddRow("id-1", "alice", "a@x.io", "Alice A", "a.png", "", now, now))

	view, err := repo.FindUserViewByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserViewByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.FindUserViewByID(context.Background(), "id-1")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

// ── SetRefreshToken / SwapRefreshToken ────────────────────────────────────────

func TestSetRefreshToken_Set(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	digest := "digest"

	mock.ExpectExec(`UPDATE users SET refresh_token = \$1, updated_at = \$2 WHERE user_id = \$3`).
		WithArgs("digest", sqlmock.AnyArg(), "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetRefreshToken(context.Background(), "id-1", &digest))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRefreshToken_Clear(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WithArgs(nil, sqlmock.AnyArg(), "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetRefreshToken(context.Background(), "id-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRefreshToken_UnknownUser(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetRefreshToken(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestSwapRefreshToken_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec(`UPDATE users SET refresh_token = \$1, updated_at = \$2 WHERE user_id = \$3 AND refresh_token = \$4`).
		WithArgs("next", sqlmock.AnyArg(), "id-1", "prev").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SwapRefreshToken(context.Background(), "id-1", "prev", "next"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSwapRefreshToken_Mismatch(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SwapRefreshToken(context.Background(), "id-1", "stale", "next")
	assert.ErrorIs(t, err, ErrRefreshTokenMismatch)
}

func TestSwapRefreshToken_ExecError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnError(errors.New("connection reset"))

	err := repo.SwapRefreshToken(context.Background(), "id-1", "prev", "next")
	assert.ErrorIs(t, err, ErrExecutingStatement)
}
