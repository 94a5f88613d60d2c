package storage

import (
	"context"
	"io"
)

// Uploader persists uploaded audio bytes and returns a reference to the
// stored object.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
