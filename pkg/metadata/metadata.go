// Package metadata reads and writes the scraped photo metadata document,
// the JSON file handed from the scraper to the downloader.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"srer/pkg/models"
)

// Marshal renders records as an indented JSON array with a trailing newline.
// A nil or empty slice renders as [].
func Marshal(records []models.PhotoRecord) ([]byte, error) {
	if records == nil {
		records = []models.PhotoRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes records to path, replacing whatever was there
func Save(path string, records []models.PhotoRecord) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metadata directory: %w", err)
		}
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to replace metadata file: %w", err)
	}

	return nil
}

// Load reads the records stored at path. JSON null values decode to "".
func Load(path string) ([]models.PhotoRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.PhotoRecord{}, nil
	}

	var records []models.PhotoRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata %s: %w", path, err)
	}
	if records == nil {
		records = []models.PhotoRecord{}
	}

	return records, nil
}

// Exists reports whether a metadata file is present at path
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
