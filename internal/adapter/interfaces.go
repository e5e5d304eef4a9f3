// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external services the accounts
// server depends on.
//
// The primary abstraction is [MediaAdapter], which decouples the media
// ingestion pipeline from the remote media store. The package ships a
// Cloudinary-compatible HTTP implementation ([NewMediaAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-tube-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/media_adapter_mock.go -package=mock

// MediaAdapter uploads local files to the remote media store.
type MediaAdapter interface {
	// Upload sends the file at localPath and returns the stored object's
	// metadata. It does not remove the local file. Returns an error if the
	// request fails, the store responds with a non-2xx status, or the
	// response carries no URL.
	Upload(ctx context.Context, localPath string) (models.UploadResult, error)
}
