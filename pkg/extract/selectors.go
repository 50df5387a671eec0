package extract

import "srer/pkg/config"

// Default selectors for the station pages of the repeat-photography site.
// Each photo sits in a views row; the nested fields are looked up inside it.
const (
	DefaultEntrySelector     = "div.views-row"
	DefaultImageSelector     = ".views-field-field-image a, .views-field-field-image img"
	DefaultArchiveNoSelector = ".views-field-field-archive-no .field-content"
	DefaultSummarySelector   = ".views-field-field-summary .field-content"
	DefaultDirectionSelector = ".views-field-field-direction .field-content"
)

// imageAttrs are tried in order on the first image match
var imageAttrs = []string{"href", "src", "data-src"}

// Selectors holds the CSS selectors for one photo entry and its fields
type Selectors struct {
	Entry     string
	Image     string
	ArchiveNo string
	Summary   string
	Direction string
}

// DefaultSelectors returns the built-in selectors
func DefaultSelectors() Selectors {
	return Selectors{
		Entry:     DefaultEntrySelector,
		Image:     DefaultImageSelector,
		ArchiveNo: DefaultArchiveNoSelector,
		Summary:   DefaultSummarySelector,
		Direction: DefaultDirectionSelector,
	}
}

// SelectorsFromConfig overlays the non-empty configured selectors on the
// defaults.
func SelectorsFromConfig(cfg config.SelectorConfig) Selectors {
	s := DefaultSelectors()
	if cfg.Entry != "" {
		s.Entry = cfg.Entry
	}
	if cfg.Image != "" {
		s.Image = cfg.Image
	}
	if cfg.ArchiveNo != "" {
		s.ArchiveNo = cfg.ArchiveNo
	}
	if cfg.Summary != "" {
		s.Summary = cfg.Summary
	}
	if cfg.Direction != "" {
		s.Direction = cfg.Direction
	}
	return s
}
