package repeatphoto

import (
	"net/url"
	"strings"

	"srer/pkg/config"
	"srer/pkg/models"
)

// StationURL interpolates the path-escaped station id into template at
// every occurrence of the {station} placeholder.
func StationURL(template string, station models.StationID) string {
	return strings.ReplaceAll(template, config.StationPlaceholder, url.PathEscape(station.String()))
}
