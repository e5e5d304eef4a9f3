// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages written by the HTTP transport
// that do not come from the service layer.
//
// Business failures carry their own public message (see service.Error);
// the constants here cover transport-level outcomes such as undecodable
// bodies and unknown routes, plus the success messages of each endpoint.
package app

const (
	// MsgInternalServerError is the only message an unclassified failure
	// ever produces.
	MsgInternalServerError = "internal server error"

	// MsgInvalidJSON is returned when a JSON body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidForm is returned when a registration request is not a
	// readable multipart form.
	MsgInvalidForm = "invalid multipart form"

	// MsgRequestTooLarge is returned when the body exceeds the upload limit.
	MsgRequestTooLarge = "request body is too large"

	MsgRouteNotFound = "route not found"

	// MsgServiceUnavailable is returned by the readiness probe while the
	// credential store does not answer.
	MsgServiceUnavailable = "service unavailable"
)

const (
	MsgUserRegistered     = "user registered successfully"
	MsgUserLoggedIn       = "user logged in successfully"
	MsgUserLoggedOut      = "user logged out successfully"
	MsgTokensRefreshed    = "access token refreshed"
	MsgCurrentUserFetched = "current user fetched successfully"
	MsgServiceReady       = "service is ready"
)
