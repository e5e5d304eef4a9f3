package models

// RegisterRequest carries the registration form after the transport layer
// has staged the uploaded files on local disk.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`

	// AvatarPath is the staged local path of the required avatar image.
	AvatarPath string `json:"-"`

	// CoverPath is the staged local path of the optional cover image.
	CoverPath string `json:"-"`
}

// StagedPaths returns the non-empty staged file paths of the request.
func (r RegisterRequest) StagedPaths() []string {
	paths := make([]string, 0, 2)
	if r.AvatarPath != "" {
		paths = append(paths, r.AvatarPath)
	}
	if r.CoverPath != "" {
		paths = append(paths, r.CoverPath)
	}
	return paths
}

// LoginRequest identifies the account by username or email.
// At least one of Username and Email must be set.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the optional JSON body of the refresh endpoint.
// The refresh token cookie takes precedence over it.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User         UserView `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}
