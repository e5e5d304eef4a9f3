package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into slow, salted digests and
// checks candidates against them. It knows nothing about users or storage.
//
// Both operations are CPU-heavy; implementations bound how many run at once
// and give up when ctx is done while waiting for a slot.
type PasswordHasher interface {
	// Hash returns the digest of plaintext. The digest embeds its own salt
	// and cost, so equal passwords hash to different strings.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A mismatch is
	// (false, nil); an error means the check itself could not run
	// (malformed digest, cancelled context).
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}
