// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/crypto"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/metrics"
	"github.com/MKhiriev/go-tube-accounts/internal/store"
	"github.com/MKhiriev/go-tube-accounts/internal/utils"
	"github.com/MKhiriev/go-tube-accounts/internal/validators"
	"github.com/MKhiriev/go-tube-accounts/models"
)

// operation names reported to metrics
const (
	opRegister     = "register"
	opLogin        = "login"
	opRefresh      = "refresh"
	opLogout       = "logout"
	opAuthenticate = "authenticate"
)

// authService is the concrete implementation of AuthService.
//
// Refresh tokens are never stored in clear: the repository keeps an
// HMAC-SHA256 digest keyed with hashKey, and the presented token is digested
// the same way before comparison.
type authService struct {
	userRepository store.UserRepository
	passwordHasher crypto.PasswordHasher
	tokenService   TokenService
	mediaService   MediaService

	validator   validators.Validator
	idGenerator *utils.UUIDGenerator

	// hashKey is the HMAC secret for refresh-token digests.
	hashKey string

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewAuthService wires the account lifecycle to its collaborators. The
// returned service holds no per-request state and is safe for concurrent use.
func NewAuthService(
	userRepository store.UserRepository,
	passwordHasher crypto.PasswordHasher,
	tokenService TokenService,
	mediaService MediaService,
	metrics *metrics.Metrics,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		tokenService:   tokenService,
		mediaService:   mediaService,
		validator:      validators.NewUserValidator(),
		idGenerator:    utils.NewUUIDGenerator(),
		hashKey:        cfg.HashKey,
		metrics:        metrics,
		logger:         logger,
	}
}

// Register creates a new account.
//
// Steps, in order: normalize and require the text fields, reject duplicates,
// require the avatar, ingest avatar and cover, hash the password, persist and
// re-read the sanitized view. A failed cover upload leaves the cover empty
// instead of failing the registration.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (view models.UserView, err error) {
	log := logger.FromContext(ctx)
	defer func() { a.metrics.AuthOperation(opRegister, err) }()
	defer a.discard(context.WithoutCancel(ctx), req.StagedPaths()...)

	req = normalizeRegisterRequest(req)
	if err = a.validator.Validate(ctx, withTrimmedPassword(req), validators.RegisterTextFields...); err != nil {
		log.Debug().Err(err).Str("func", "authService.Register").Msg("required fields are missing")
		return models.UserView{}, newError(ErrValidation, MsgAllFieldsRequired, err)
	}

	existing, err := a.userRepository.FindUserByUsernameOrEmail(ctx, req.Username, req.Email)
	switch {
	case err == nil:
		log.Info().Str("func", "authService.Register").Str("existing_id", existing.UserID).Msg("username or email already taken")
		return models.UserView{}, newError(ErrConflict, MsgUserAlreadyExists, store.ErrUserAlreadyExists)
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Str("func", "authService.Register").Msg("duplicate lookup failed")
		return models.UserView{}, newError(ErrInternal, MsgRegistrationFailed, err)
	}

	if err = a.validator.Validate(ctx, req, validators.FieldAvatar); err != nil {
		return models.UserView{}, newError(ErrValidation, MsgAvatarRequired, err)
	}

	avatarURL, err := a.mediaService.Ingest(ctx, req.AvatarPath)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("avatar ingestion failed")
		return models.UserView{}, newError(ErrValidation, MsgAvatarRequired, err)
	}

	coverURL, err := a.mediaService.Ingest(ctx, req.CoverPath)
	if err != nil {
		log.Warn().Err(err).Str("func", "authService.Register").Msg("cover ingestion failed, continuing without cover")
		coverURL = ""
	}

	passwordHash, err := a.passwordHasher.Hash(ctx, req.Password)
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return models.UserView{}, newError(ErrValidation, MsgPasswordTooLong, err)
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("password hashing failed")
		return models.UserView{}, newError(ErrInternal, MsgRegistrationFailed, err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		UserID:       a.idGenerator.Generate(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
		AvatarURL:    avatarURL,
		CoverURL:     coverURL,
	})
	if errors.Is(err, store.ErrUserAlreadyExists) {
		return models.UserView{}, newError(ErrConflict, MsgUserAlreadyExists, err)
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("user creation failed")
		return models.UserView{}, newError(ErrInternal, MsgRegistrationFailed, err)
	}

	view, err = a.userRepository.FindUserViewByID(ctx, created.UserID)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Str("user_id", created.UserID).Msg("created user could not be read back")
		return models.UserView{}, newError(ErrInternal, MsgRegistrationFailed, err)
	}

	log.Info().Str("func", "authService.Register").Str("user_id", view.UserID).Msg("user registered")
	return view, nil
}

// Login authenticates by username or email and starts a session. The new
// refresh token replaces any previous one, so only one session is active per
// account.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (result models.LoginResult, err error) {
	log := logger.FromContext(ctx)
	defer func() { a.metrics.AuthOperation(opLogin, err) }()

	req.Username = normalizeIdentifier(req.Username)
	req.Email = normalizeIdentifier(req.Email)
	if err = a.validator.Validate(ctx, req); err != nil {
		return models.LoginResult{}, newError(ErrValidation, MsgIdentifierRequired, err)
	}

	user, err := a.userRepository.FindUserByUsernameOrEmail(ctx, req.Username, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.LoginResult{}, newError(ErrNotFound, MsgUserDoesNotExist, err)
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user lookup failed")
		return models.LoginResult{}, newError(ErrInternal, MsgLoginFailed, err)
	}

	ok, err := a.passwordHasher.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Str("user_id", user.UserID).Msg("password verification failed")
		return models.LoginResult{}, newError(ErrInternal, MsgLoginFailed, err)
	}
	if !ok {
		log.Info().Str("func", "authService.Login").Str("user_id", user.UserID).Msg("wrong password")
		return models.LoginResult{}, newError(ErrUnauthorized, MsgInvalidCredentials, nil)
	}

	pair, err := a.startSession(ctx, user)
	if err != nil {
		return models.LoginResult{}, err
	}

	view, err := a.userRepository.FindUserViewByID(ctx, user.UserID)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Str("user_id", user.UserID).Msg("user view could not be read")
		return models.LoginResult{}, newError(ErrInternal, MsgLoginFailed, err)
	}

	log.Info().Str("func", "authService.Login").Str("user_id", user.UserID).Msg("user logged in")
	return models.LoginResult{
		User:         view,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh rotates the refresh token.
//
// The presented token must verify and must equal the one stored for its
// account. A token that verifies but no longer matches has already been
// rotated or revoked: it is reported as reuse. The swap is conditional on
// the stored digest, so of two concurrent refreshes with the same token only
// one succeeds.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (pair models.TokenPair, err error) {
	log := logger.FromContext(ctx)
	defer func() { a.metrics.AuthOperation(opRefresh, err) }()

	if refreshToken == "" {
		return models.TokenPair{}, newError(ErrUnauthorized, MsgUnauthorizedRequest, nil)
	}

	claims, err := a.tokenService.Verify(ctx, refreshToken, models.RefreshToken)
	if err != nil {
		log.Info().Err(err).Str("func", "authService.Refresh").Msg("refresh token rejected")
		return models.TokenPair{}, newError(ErrUnauthorized, MsgInvalidRefreshToken, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("func", "authService.Refresh").Str("user_id", claims.UserID).Msg("refresh token of unknown user")
		return models.TokenPair{}, newError(ErrUnauthorized, MsgInvalidRefreshToken, err)
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Refresh").Msg("user lookup failed")
		return models.TokenPair{}, newError(ErrInternal, MsgRefreshFailed, err)
	}

	presented := utils.HashString(refreshToken, a.hashKey)
	if user.RefreshToken == nil || !utils.EqualDigests(*user.RefreshToken, presented) {
		return models.TokenPair{}, a.reuse(ctx, user.UserID, nil)
	}

	pair, err = a.tokenService.IssuePair(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "authService.Refresh").Msg("token issuing failed")
		return models.TokenPair{}, newError(ErrInternal, MsgTokenGenerationFailed, err)
	}

	err = a.userRepository.SwapRefreshToken(ctx, user.UserID, presented, utils.HashString(pair.RefreshToken, a.hashKey))
	if errors.Is(err, store.ErrRefreshTokenMismatch) {
		return models.TokenPair{}, a.reuse(ctx, user.UserID, err)
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Refresh").Msg("refresh token rotation failed")
		return models.TokenPair{}, newError(ErrInternal, MsgRefreshFailed, err)
	}

	log.Debug().Str("func", "authService.Refresh").Str("user_id", user.UserID).Msg("refresh token rotated")
	return pair, nil
}

// Logout revokes the refresh token of userID. Access tokens already issued
// stay valid until they expire.
func (a *authService) Logout(ctx context.Context, userID string) (err error) {
	log := logger.FromContext(ctx)
	defer func() { a.metrics.AuthOperation(opLogout, err) }()

	if userID == "" {
		return newError(ErrUnauthorized, MsgUnauthorizedRequest, nil)
	}

	err = a.userRepository.SetRefreshToken(ctx, userID, nil)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return newError(ErrUnauthorized, MsgUnauthorizedRequest, err)
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Logout").Str("user_id", userID).Msg("refresh token revocation failed")
		return newError(ErrInternal, MsgLogoutFailed, err)
	}

	log.Info().Str("func", "authService.Logout").Str("user_id", userID).Msg("user logged out")
	return nil
}

// Authenticate backs the auth guard. Every rejection carries the same
// public message; the log says which check failed.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (view models.UserView, err error) {
	log := logger.FromContext(ctx)
	defer func() { a.metrics.AuthOperation(opAuthenticate, err) }()

	if accessToken == "" {
		log.Debug().Str("func", "authService.Authenticate").Msg("no access token")
		return models.UserView{}, newError(ErrUnauthorized, MsgInvalidAccessToken, ErrTokenIsExpiredOrInvalid)
	}

	claims, err := a.tokenService.Verify(ctx, accessToken, models.AccessToken)
	if err != nil {
		log.Debug().Str("func", "authService.Authenticate").Msg("access token failed verification")
		return models.UserView{}, newError(ErrUnauthorized, MsgInvalidAccessToken, err)
	}

	view, err = a.userRepository.FindUserViewByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("func", "authService.Authenticate").Str("user_id", claims.UserID).Msg("access token of unknown user")
		return models.UserView{}, newError(ErrUnauthorized, MsgInvalidAccessToken, err)
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Authenticate").Msg("user lookup failed")
		return models.UserView{}, newError(ErrInternal, MsgAuthenticationFailed, err)
	}

	return view, nil
}

// startSession issues a token pair and stores the refresh digest.
func (a *authService) startSession(ctx context.Context, user models.User) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	pair, err := a.tokenService.IssuePair(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "authService.startSession").Msg("token issuing failed")
		return models.TokenPair{}, newError(ErrInternal, MsgTokenGenerationFailed, err)
	}

	digest := utils.HashString(pair.RefreshToken, a.hashKey)
	if err = a.userRepository.SetRefreshToken(ctx, user.UserID, &digest); err != nil {
		log.Err(err).Str("func", "authService.startSession").Msg("refresh token could not be stored")
		return models.TokenPair{}, newError(ErrInternal, MsgTokenGenerationFailed, err)
	}

	return pair, nil
}

func (a *authService) reuse(ctx context.Context, userID string, cause error) error {
	logger.FromContext(ctx).Warn().
		Str("func", "authService.Refresh").
		Str("user_id", userID).
		Msg("refresh token is expired or already used, possible token reuse")
	a.metrics.RefreshTokenReuse()

	if cause == nil {
		return newError(ErrUnauthorized, MsgRefreshTokenExpired, ErrRefreshTokenReused)
	}
	return newError(ErrUnauthorized, MsgRefreshTokenExpired, errors.Join(ErrRefreshTokenReused, cause))
}

func (a *authService) discard(ctx context.Context, stagedPaths ...string) {
	if err := a.mediaService.Discard(ctx, stagedPaths...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.discard").Msg("staged files were not discarded")
	}
}

func normalizeRegisterRequest(req models.RegisterRequest) models.RegisterRequest {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Username = normalizeIdentifier(req.Username)
	req.Email = normalizeIdentifier(req.Email)
	return req
}

// withTrimmedPassword is used for the emptiness check only; the password
// itself is hashed as typed.
func withTrimmedPassword(req models.RegisterRequest) models.RegisterRequest {
	req.Password = strings.TrimSpace(req.Password)
	return req
}

func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
