package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tube-accounts/internal/config"
	"github.com/MKhiriev/go-tube-accounts/internal/logger"
	"github.com/MKhiriev/go-tube-accounts/internal/utils"
	"github.com/MKhiriev/go-tube-accounts/models"
)

// tokenService signs access and refresh tokens with separate HMAC keys.
// A token signed with one key never verifies under the other, and the
// "typ" claim is checked on top of that.
type tokenService struct {
	accessSecret   string
	accessDuration time.Duration

	refreshSecret   string
	refreshDuration time.Duration

	// issuer is the "iss" claim of every token; tokens from other issuers are
	// rejected.
	issuer string

	logger *logger.Logger
}

func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		accessSecret:    cfg.AccessTokenSecret,
		accessDuration:  cfg.AccessTokenDuration,
		refreshSecret:   cfg.RefreshTokenSecret,
		refreshDuration: cfg.RefreshTokenDuration,
		issuer:          cfg.TokenIssuer,
		logger:          logger,
	}
}

func (t *tokenService) IssueAccess(ctx context.Context, user models.User) (string, error) {
	return t.issue(user, models.AccessToken)
}

func (t *tokenService) IssueRefresh(ctx context.Context, user models.User) (string, error) {
	return t.issue(user, models.RefreshToken)
}

func (t *tokenService) IssuePair(ctx context.Context, user models.User) (models.TokenPair, error) {
	accessToken, err := t.IssueAccess(ctx, user)
	if err != nil {
		return models.TokenPair{}, err
	}

	refreshToken, err := t.IssueRefresh(ctx, user)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (t *tokenService) Verify(ctx context.Context, token string, kind models.TokenKind) (models.Claims, error) {
	log := logger.FromContext(ctx)

	secret, _, err := t.params(kind)
	if err != nil {
		log.Err(err).Str("func", "tokenService.Verify").Msg("unknown token kind")
		return models.Claims{}, ErrTokenIsExpiredOrInvalid
	}

	claims, err := utils.ValidateAndParseJWTToken(token, secret, t.issuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "tokenService.Verify").Str("kind", string(kind)).Msg("token rejected")
		return models.Claims{}, ErrTokenIsExpiredOrInvalid
	}

	if claims.Kind != kind {
		log.Debug().Str("func", "tokenService.Verify").
			Str("expected", string(kind)).
			Str("actual", string(claims.Kind)).
			Msg("token kind mismatch")
		return models.Claims{}, ErrTokenIsExpiredOrInvalid
	}

	return claims, nil
}

func (t *tokenService) issue(user models.User, kind models.TokenKind) (string, error) {
	secret, duration, err := t.params(kind)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	token, err := utils.GenerateJWTToken(models.NewClaims(user, kind), t.issuer, duration, secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (t *tokenService) params(kind models.TokenKind) (string, time.Duration, error) {
	switch kind {
	case models.AccessToken:
		return t.accessSecret, t.accessDuration, nil
	case models.RefreshToken:
		return t.refreshSecret, t.refreshDuration, nil
	default:
		return "", 0, fmt.Errorf("unknown token kind %q", kind)
	}
}
