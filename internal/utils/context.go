// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-tube-accounts/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key under which the auth guard stores the authenticated
// [models.UserView] in the request context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserCtxKey, user.View())
var UserCtxKey = contextKey("user")

// GetUserFromContext retrieves the authenticated user from the context.
//
// Returns the user view and an ok flag:
//   - ok == true : value is found, has the correct type and a non-empty id
//   - ok == false: value is missing or has an unexpected type
func GetUserFromContext(ctx context.Context) (models.UserView, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.UserView)
	if !ok || user.UserID == "" {
		return models.UserView{}, false
	}
	return user, true
}

// WithUser returns a copy of ctx carrying user under [UserCtxKey].
func WithUser(ctx context.Context, user models.UserView) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}
