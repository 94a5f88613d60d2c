package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalUploaderWritesUnderRoot(t *testing.T) {
	root := t.TempDir()
	u := NewLocalUploader(root)

	path, err := u.Upload(context.Background(), "audio_messages/clip.webm", "audio/webm", strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(path, root) {
		t.Errorf("stored path %q escapes root %q", path, root)
	}

	got, err := os.ReadFile(filepath.Join(root, "audio_messages", "clip.webm"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("content = %q, want %q", got, "abc")
	}
}
