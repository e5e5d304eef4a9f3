package service

import (
	"errors"
)

// Error kinds. Every business failure returned by this package wraps exactly
// one of them, so the transport layer can map it without knowing the cause.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

var (
	ErrMediaUploadFailed       = errors.New("media upload failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrRefreshTokenReused      = errors.New("refresh token reused")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrStoreUnavailable        = errors.New("credential store is unavailable")
)

// Public messages carried by [Error].
const (
	MsgAllFieldsRequired     = "all fields are required"
	MsgUserAlreadyExists     = "user with username or email already exists"
	MsgAvatarRequired        = "avatar file is required"
	MsgRegistrationFailed    = "something went wrong while registering the user"
	MsgIdentifierRequired    = "username or email is required"
	MsgUserDoesNotExist      = "user does not exist"
	MsgInvalidCredentials    = "invalid user credentials"
	MsgUnauthorizedRequest   = "unauthorized request"
	MsgInvalidRefreshToken   = "invalid refresh token"
	MsgRefreshTokenExpired   = "refresh token is expired or used"
	MsgInvalidAccessToken    = "invalid access token"
	MsgTokenGenerationFailed = "something went wrong while generating tokens"
	MsgLogoutFailed          = "something went wrong while logging out"
	MsgLoginFailed           = "something went wrong while logging in"
	MsgRefreshFailed         = "something went wrong while refreshing tokens"
	MsgAuthenticationFailed  = "something went wrong while authenticating the request"
	MsgPasswordTooLong       = "password is too long"
)

// Error is a classified business failure.
//
// Kind is one of the kind sentinels above, Message is safe to show to the
// caller, and Err is the underlying cause, kept for logs only.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func newError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to [errors.Is] and [errors.As].
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of err, or nil when err is not a classified
// failure.
func KindOf(err error) error {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return nil
}
