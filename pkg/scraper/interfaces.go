package scraper

import "context"

// PageFetcher retrieves the raw body of a station page
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}
