// Package repeatphoto talks to the Santa Rita Experimental Range
// repeat-photography website.
//
// StationURL builds a station page address from the configured template.
// Client fetches pages and images with resty, one request at a time, with a
// per-request timeout (60s for pages, 120s for images by default). Failures
// come back as *errors.Error values of type network or http_status; nothing
// is retried.
package repeatphoto
