package localfs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	payload := []byte("image bytes")
	if err := storage.Save(context.Background(), "scan-1_leaf.png", bytes.NewReader(payload)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rc, err := storage.Open(context.Background(), "scan-1_leaf.png")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("stored bytes differ from payload")
	}
}

func TestSaveConfinesKeysToBaseDir(t *testing.T) {
	base := t.TempDir()
	storage, err := New(base)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := storage.Save(context.Background(), "../escape.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "escape.txt")); err != nil {
		t.Fatalf("object must land inside the base dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(base), "escape.txt")); err == nil {
		t.Fatalf("object escaped the base dir")
	}
}

func TestOpenMissingObject(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := storage.Open(context.Background(), "nope.png"); err == nil {
		t.Fatalf("expected error for missing object")
	}
}
