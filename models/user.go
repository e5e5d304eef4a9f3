package models

import "time"

// User is the persisted account record.
//
// PasswordHash and RefreshToken are credential material: they are never
// serialized and must not cross the service boundary. Use [User.View] to
// obtain the projection that is safe to return to callers.
type User struct {
	// UserID is the immutable identifier (UUIDv7) assigned at registration.
	UserID string `json:"_id"`

	// Username is unique, trimmed and lower-cased.
	Username string `json:"username"`

	// Email is unique, trimmed and lower-cased.
	Email string `json:"email"`

	// FullName is the trimmed display name.
	FullName string `json:"fullName"`

	// PasswordHash is the bcrypt digest of the user's password.
	PasswordHash string `json:"-"`

	// AvatarURL is the remote URL of the ingested avatar. Always set.
	AvatarURL string `json:"avatar"`

	// CoverURL is the remote URL of the optional cover image; empty when absent.
	CoverURL string `json:"coverImage"`

	// RefreshToken holds the digest of the single currently valid refresh
	// token, or nil when no session is active.
	RefreshToken *string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View returns the sanitized projection of u.
func (u User) View() UserView {
	return UserView{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserView is the sanitized identity: a [User] without the password hash
// and the refresh token. It is the only user shape returned by services and
// written to HTTP responses.
type UserView struct {
	UserID    string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatar"`
	CoverURL  string    `json:"coverImage"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
