// Package storage keeps uploaded media files, either in a local directory or
// in an S3 compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned when a stored file is missing
var ErrNotExist = errors.New("stored file does not exist")

// FileStore is the blob storage the pipeline reads uploads from
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Stat(ctx context.Context, key string) (int64, error)
	// Localize returns a filesystem path holding the file contents. The
	// release func removes any copy made for the caller.
	Localize(ctx context.Context, key string) (string, func(), error)
	Remove(ctx context.Context, key string) error
}
