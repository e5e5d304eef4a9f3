package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-tube-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns the account lifecycle: registration, login, refresh-token
// rotation and logout. It also resolves access tokens for the auth guard.
//
// All failures are *[Error] values.
type AuthService interface {
	// Register creates an account from the request and returns its sanitized
	// view. Staged files named by the request are removed before it returns,
	// whatever the outcome. No session is established.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserView, error)

	// Login checks the credentials, issues a token pair and makes its refresh
	// token the only valid one for the account.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)

	// Refresh exchanges a valid, current refresh token for a new pair. The
	// presented token stops being valid.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Logout revokes the account's refresh token.
	Logout(ctx context.Context, userID string) error

	// Authenticate resolves an access token to the account it was issued for.
	Authenticate(ctx context.Context, accessToken string) (models.UserView, error)
}

// TokenService issues and verifies signed access and refresh tokens.
type TokenService interface {
	IssueAccess(ctx context.Context, user models.User) (string, error)
	IssueRefresh(ctx context.Context, user models.User) (string, error)
	IssuePair(ctx context.Context, user models.User) (models.TokenPair, error)

	// Verify checks signature, issuer, expiry and kind. Any failure is
	// reported as [ErrTokenIsExpiredOrInvalid].
	Verify(ctx context.Context, token string, kind models.TokenKind) (models.Claims, error)
}

// MediaService moves uploaded files through the local staging area to the
// remote media store.
type MediaService interface {
	// Stage writes an incoming upload to the staging area and returns its
	// local path.
	Stage(ctx context.Context, originalName string, src io.Reader) (string, error)

	// Ingest uploads the staged file and returns its remote URL. The staged
	// file is removed on every path. An empty path yields an empty URL.
	Ingest(ctx context.Context, stagedPath string) (string, error)

	// Discard removes staged files that will not be ingested.
	Discard(ctx context.Context, stagedPaths ...string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string

	// Ping fails with ErrStoreUnavailable when the credential store does
	// not answer.
	Ping(ctx context.Context) error
}
