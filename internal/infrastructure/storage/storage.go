package storage

// PathAvatars is the key prefix for profile images.
const PathAvatars = "avatars/"

// BlobStore persists profile images under a stable key. Implementations: a
// local disk store served by the HTTP layer in development, S3 in deployed
// environments.
type BlobStore interface {
	// Put stores the blob and returns the key it was stored under.
	Put(data []byte, key string) (string, error)

	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(key string) error

	// URL returns the public path the blob is reachable at.
	URL(key string) string
}
