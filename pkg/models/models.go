package models

import "strings"

// StationID identifies one repeat-photography station on the upstream site.
type StationID string

func (id StationID) String() string {
	return string(id)
}

// PhotoRecord is one photo entry scraped from a station page.
// Empty strings stand for values the page did not provide.
type PhotoRecord struct {
	StationID   StationID `json:"station_id"`
	ArchiveNo   string    `json:"photo_archive_no"`
	PhotoHref   string    `json:"photo_href"`
	SummaryText string    `json:"summary_text"`
	Direction   string    `json:"direction"`
}

// HasPhoto reports whether the record carries any image reference at all.
// A blank or whitespace-only href counts as none.
func (r PhotoRecord) HasPhoto() bool {
	return strings.TrimSpace(r.PhotoHref) != ""
}
