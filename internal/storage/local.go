package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader writes objects under a root directory on local disk. It is
// the default when no bucket is configured.
type LocalUploader struct {
	root string
}

func NewLocalUploader(root string) *LocalUploader {
	return &LocalUploader{root: root}
}

func (u *LocalUploader) Upload(_ context.Context, objectName string, _ string, r io.Reader) (string, error) {
	path := filepath.Join(u.root, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
