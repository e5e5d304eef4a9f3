// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
)

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrInvalidJSON is returned when a request body is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrInvalidForm is returned when the registration request is not a
	// well-formed multipart form.
	ErrInvalidForm = errors.New("invalid multipart form")

	// ErrRequestTooLarge is returned when the request body exceeds the
	// configured upload limit.
	ErrRequestTooLarge = errors.New("request body is too large")

	// ErrNoUserInContext means a guarded handler ran without the guard.
	ErrNoUserInContext = errors.New("no authenticated user in request context")
)

// requestError is a failure detected before the service layer is reached.
// It carries its own status and public message.
type requestError struct {
	status  int
	message string
	err     error
}

func newRequestError(status int, message string, err error) *requestError {
	return &requestError{status: status, message: message, err: err}
}

func (e *requestError) Error() string {
	return e.message + ": " + e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}

func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || errors.Is(err, ErrRequestTooLarge)
}
