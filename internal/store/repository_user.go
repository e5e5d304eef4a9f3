package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/models"
)

const usersTable = "users"

// userColumns is the full record, in scan order of [scanUser].
var userColumns = []string{
	"user_id", "username", "email", "full_name", "password_hash",
	"avatar_url", "cover_url", "refresh_token", "created_at", "updated_at",
}

// userViewColumns never names password_hash or refresh_token.
var userViewColumns = []string{
	"user_id", "username", "email", "full_name",
	"avatar_url", "cover_url", "created_at", "updated_at",
}

// userRepository is the SQL implementation of [UserRepository]. The same
// code serves PostgreSQL and SQLite; the dialect differences live in the
// squirrel placeholder format and the error classifier of [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindUserByUsernameOrEmail implements [UserRepository].
func (r *userRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	match := sq.Or{}
	if username != "" {
		match = append(match, sq.Eq{"username": username})
	}
	if email != "" {
		match = append(match, sq.Eq{"email": email})
	}
	if len(match) == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(match).
		Limit(1).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsernameOrEmail").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, ErrNoUserWasFound) {
			log.Err(err).Str("func", "*userRepository.FindUserByUsernameOrEmail").Msg("error finding user")
		}
		return models.User{}, err
	}

	return user, nil
}

// CreateUser implements [UserRepository]. Timestamps are assigned here so
// both backends store identical values.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	query, args, err := r.db.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(
			user.UserID, user.Username, user.Email, user.FullName, user.PasswordHash,
			user.AvatarURL, user.CoverURL, nullableString(user.RefreshToken), user.CreatedAt, user.UpdatedAt,
		).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		class := r.db.errorClassificator.Classify(err)
		log.Err(err).Str("func", "*userRepository.CreateUser").Stringer("class", class).Msg("error inserting user")

		if class == UniqueViolation {
			return models.User{}, ErrUserAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByID implements [UserRepository].
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, ErrNoUserWasFound) {
			log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error finding user")
		}
		return models.User{}, err
	}

	return user, nil
}

// FindUserViewByID implements [UserRepository].
func (r *userRepository) FindUserViewByID(ctx context.Context, userID string) (models.UserView, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userViewColumns...).
		From(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserViewByID").Msg("error building query")
		return models.UserView{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var view models.UserView
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&view.UserID, &view.Username, &view.Email, &view.FullName,
		&view.AvatarURL, &view.CoverURL, &view.CreatedAt, &view.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.UserView{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.FindUserViewByID").Msg("error scanning user view")
		return models.UserView{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return view, nil
}

// SetRefreshToken implements [UserRepository].
func (r *userRepository) SetRefreshToken(ctx context.Context, userID string, digest *string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update(usersTable).
		Set("refresh_token", nullableString(digest)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetRefreshToken").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetRefreshToken").Msg("error updating refresh token")
		return err
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// SwapRefreshToken implements [UserRepository]. The comparison happens in
// the UPDATE itself, so of two concurrent swaps from the same expected
// digest exactly one succeeds.
func (r *userRepository) SwapRefreshToken(ctx context.Context, userID, expected, next string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update(usersTable).
		Set("refresh_token", next).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"refresh_token": expected}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SwapRefreshToken").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SwapRefreshToken").Msg("error swapping refresh token")
		return err
	}
	if affected == 0 {
		return ErrRefreshTokenMismatch
	}

	return nil
}

func (r *userRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user         models.User
		refreshToken sql.NullString
	)

	err := row.Scan(
		&user.UserID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash,
		&user.AvatarURL, &user.CoverURL, &refreshToken, &user.CreatedAt, &user.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}

	return user, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
