// Package storage abstracts the object store holding product photos.
// The S3 implementation works against AWS S3 or any S3-compatible service
// (MinIO, R2, Spaces); tests substitute an in-memory implementation.
package storage

import "context"

// ObjectStorage is the port the media protocol talks to.
type ObjectStorage interface {
	// Upload writes body under path with the given content type.
	Upload(ctx context.Context, path string, body []byte, contentType string) error
	// Remove deletes the object at path. Removing a missing object is not an error.
	Remove(ctx context.Context, path string) error
	// PublicURL returns the public URL serving the object at path.
	PublicURL(path string) string
	// Bucket returns the configured bucket name (used for URL→path extraction).
	Bucket() string
}
