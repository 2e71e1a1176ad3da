// Package storage provides blob storage backends for uploaded files.
package storage

import (
	"context"
	"io"
)

// Provider abstracts a flat blob store addressed by slash-separated
// keys. Implementations exist for the local filesystem and for
// S3-compatible object stores; configuration selects one at startup.
type Provider interface {
	// Put writes the blob under key, creating intermediate
	// directories/prefixes as needed.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// PublicURL resolves key to the URL clients fetch it from.
	PublicURL(key string) string
}
