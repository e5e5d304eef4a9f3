package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("media store unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRateLimited         = errors.New("media store rate limit exceeded")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("media store internal error")

	// ErrEmptyMediaURL is returned when the store accepts an upload but its
	// response names no URL for it.
	ErrEmptyMediaURL = errors.New("media store returned no url")
)
