package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafeName is returned for station or file names that are empty or
// would resolve outside their parent directory.
var ErrUnsafeName = errors.New("unsafe path component")

// Manager owns the photo root and the per-station directories below it
type Manager struct {
	root        string
	stationDirs map[string]bool
	savedFiles  int
}

// NewManager creates the photo root if needed and returns a manager for it
func NewManager(root string) (*Manager, error) {
	if root == "" {
		return nil, errors.New("photo root directory is required")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{
		root:        root,
		stationDirs: make(map[string]bool),
	}, nil
}

// ValidateName checks that name is usable as a single path component
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	return nil
}

// EnsureStationDir creates <root>/<station> if it does not exist yet and
// returns its path.
func (m *Manager) EnsureStationDir(station string) (string, error) {
	if err := ValidateName(station); err != nil {
		return "", err
	}

	dir := filepath.Join(m.root, station)
	if m.stationDirs[station] {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create station directory: %w", err)
	}
	m.stationDirs[station] = true

	return dir, nil
}

// PathFor returns the destination path of a file inside a station directory
func (m *Manager) PathFor(station, filename string) string {
	return filepath.Join(m.root, station, filename)
}

// Exists reports whether the file has already been written
func (m *Manager) Exists(station, filename string) bool {
	info, err := os.Stat(m.PathFor(station, filename))
	return err == nil && !info.IsDir()
}

// SaveFile writes r to <root>/<station>/<filename>, replacing any existing
// file, and returns the number of bytes written.
func (m *Manager) SaveFile(r io.Reader, station, filename string) (int64, error) {
	if err := ValidateName(filename); err != nil {
		return 0, err
	}
	dir, err := m.EnsureStationDir(station)
	if err != nil {
		return 0, err
	}

	filename = filepath.Join(dir, filename)

	// Create temporary file first
	out, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempFile := out.Name()

	written, err := io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return 0, fmt.Errorf("failed to save photo data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return 0, fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return 0, fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.savedFiles++
	return written, nil
}

// Root returns the photo root directory
func (m *Manager) Root() string {
	return m.root
}

// SavedCount returns the number of files written by this manager
func (m *Manager) SavedCount() int {
	return m.savedFiles
}
