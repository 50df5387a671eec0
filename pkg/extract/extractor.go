// Package extract turns a station page into photo records.
package extract

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"srer/pkg/errors"
	"srer/pkg/models"
)

// Extractor pulls the photo entries out of one station page
type Extractor interface {
	Extract(station models.StationID, page io.Reader) ([]models.PhotoRecord, error)
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// HTMLExtractor is the goquery backed Extractor
type HTMLExtractor struct {
	selectors Selectors
}

// New returns an extractor using the given selectors
func New(selectors Selectors) *HTMLExtractor {
	return &HTMLExtractor{selectors: selectors}
}

// Extract returns one record per element matching the entry selector, in
// document order. Missing nested elements leave the field empty.
func (e *HTMLExtractor) Extract(station models.StationID, page io.Reader) ([]models.PhotoRecord, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeParsing, station.String(), "failed to parse station page", err)
	}

	records := make([]models.PhotoRecord, 0)
	doc.Find(e.selectors.Entry).Each(func(_ int, entry *goquery.Selection) {
		records = append(records, models.PhotoRecord{
			StationID:   station,
			ArchiveNo:   text(entry, e.selectors.ArchiveNo),
			PhotoHref:   imageRef(entry, e.selectors.Image),
			SummaryText: text(entry, e.selectors.Summary),
			Direction:   text(entry, e.selectors.Direction),
		})
	})

	return records, nil
}

func imageRef(entry *goquery.Selection, selector string) string {
	img := entry.Find(selector).First()
	if img.Length() == 0 {
		return ""
	}
	for _, attr := range imageAttrs {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

func text(entry *goquery.Selection, selector string) string {
	sel := entry.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return normalize(sel.Text())
}

func normalize(s string) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

// String describes the extractor for logs
func (e *HTMLExtractor) String() string {
	return fmt.Sprintf("html(entry=%q)", e.selectors.Entry)
}
