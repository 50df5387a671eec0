// Package stations loads the station whitelist that drives a scrape run.
package stations

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"srer/pkg/models"
)

// Options controls how the station file is read
type Options struct {
	// SkipHeader drops the first record
	SkipHeader bool
	// Delimiter separates fields; empty means comma
	Delimiter string
}

// Load reads station identifiers from the delimited file at path.
// The identifier is the trimmed first field of each record. File order is
// kept and duplicates are returned as-is.
func Load(path string, opts Options) ([]models.StationID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open station file: %w", err)
	}
	defer f.Close()

	ids, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read station file %s: %w", path, err)
	}
	return ids, nil
}

// byteOrderMark is prepended by some spreadsheet exports
const byteOrderMark = "\uFEFF"

// Read parses station identifiers from r. Quotes are read leniently: a stray
// quote in any column never fails the load.
func Read(r io.Reader, opts Options) ([]models.StationID, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	if opts.Delimiter != "" {
		d, size := utf8.DecodeRuneInString(opts.Delimiter)
		if size != len(opts.Delimiter) {
			return nil, errors.New("delimiter must be a single character")
		}
		reader.Comma = d
	}

	ids := make([]models.StationID, 0)
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if first {
			first = false
			if len(record) > 0 {
				record[0] = strings.TrimPrefix(record[0], byteOrderMark)
			}
			if opts.SkipHeader {
				continue
			}
		}

		if len(record) == 0 {
			continue
		}
		id := strings.TrimSpace(record[0])
		if id == "" {
			continue
		}
		ids = append(ids, models.StationID(id))
	}

	return ids, nil
}
