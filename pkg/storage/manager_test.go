package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewManager(t *testing.T) {
	root := filepath.Join(t.TempDir(), "photos")

	manager, err := NewManager(root)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Fatalf("Expected root directory to be created, got %v", err)
	}
	if manager.Root() != root {
		t.Errorf("Root() = %q, want %q", manager.Root(), root)
	}

	if _, err := NewManager(""); err == nil {
		t.Error("Expected error for empty root")
	}
}

func TestEnsureStationDir(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	dir, err := manager.EnsureStationDir("101")
	if err != nil {
		t.Fatalf("EnsureStationDir() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("Expected station directory to exist: %v", err)
	}

	// Idempotent
	again, err := manager.EnsureStationDir("101")
	if err != nil || again != dir {
		t.Errorf("Second EnsureStationDir() = %q, %v", again, err)
	}

	for _, bad := range []string{"", " ", ".", "..", "a/b", `a\b`, "../101"} {
		if _, err := manager.EnsureStationDir(bad); !errors.Is(err, ErrUnsafeName) {
			t.Errorf("EnsureStationDir(%q) error = %v, want ErrUnsafeName", bad, err)
		}
	}
}

func TestSaveFile(t *testing.T) {
	root := t.TempDir()
	manager, err := NewManager(root)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	testData := []byte("test photo data")
	n, err := manager.SaveFile(bytes.NewReader(testData), "101", "photo1.jpg")
	if err != nil {
		t.Fatalf("Failed to save photo: %v", err)
	}
	if n != int64(len(testData)) {
		t.Errorf("SaveFile() wrote %d bytes, want %d", n, len(testData))
	}

	expectedPath := filepath.Join(root, "101", "photo1.jpg")
	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(content, testData) {
		t.Error("File content does not match expected data")
	}
	if !manager.Exists("101", "photo1.jpg") {
		t.Error("Expected Exists to return true for saved file")
	}

	// Overwrite with new content
	if _, err := manager.SaveFile(strings.NewReader("v2"), "101", "photo1.jpg"); err != nil {
		t.Fatalf("Failed to overwrite photo: %v", err)
	}
	content, _ = os.ReadFile(expectedPath)
	if string(content) != "v2" {
		t.Errorf("Expected overwritten content, got %q", content)
	}

	entries, err := os.ReadDir(filepath.Join(root, "101"))
	if err != nil {
		t.Fatalf("Failed to list station dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the photo in station dir, got %d entries", len(entries))
	}
	if manager.SavedCount() != 2 {
		t.Errorf("SavedCount() = %d, want 2", manager.SavedCount())
	}

	if _, err := manager.SaveFile(strings.NewReader("x"), "101", ".."); !errors.Is(err, ErrUnsafeName) {
		t.Errorf("Expected ErrUnsafeName for bad filename, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stream broke") }

func TestSaveFileCleansUpOnReadError(t *testing.T) {
	root := t.TempDir()
	manager, err := NewManager(root)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if _, err := manager.SaveFile(failingReader{}, "205", "photo.jpg"); err == nil {
		t.Fatal("Expected error from failing reader")
	}

	entries, _ := os.ReadDir(filepath.Join(root, "205"))
	if len(entries) != 0 {
		t.Errorf("Expected no leftover files, got %d", len(entries))
	}
}
