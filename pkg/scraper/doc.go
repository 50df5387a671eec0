// Package scraper runs the metadata scrape pipeline.
//
// For each station id, strictly in order and without concurrency, the
// Scraper builds the station page URL, fetches it, and hands the body to an
// extract.Extractor. Records from all stations are concatenated and written
// as one JSON document by ScrapeToFile. Fetch failures never abort the run;
// they show up as failed outcomes in the returned report.
//
//	s := scraper.NewFromConfig(cfg, logger.GetLogger())
//	rep, err := s.ScrapeToFile(ctx, ids, cfg.Paths.MetadataFile)
package scraper
