package models

// UploadResult is the remote store's answer to a successful upload.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

// Location returns the URL to persist for the uploaded asset, preferring the
// HTTPS variant.
func (r UploadResult) Location() string {
	if r.SecureURL != "" {
		return r.SecureURL
	}
	return r.URL
}
