package object

import (
	"context"
	"io"
)

// Object describes a stored blob.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// ObjectStore saves and reads back blobs namespaced per user.
type ObjectStore interface {
	Put(ctx context.Context, userID, fileName, contentType string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
