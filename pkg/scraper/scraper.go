package scraper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"srer/pkg/config"
	"srer/pkg/errors"
	"srer/pkg/extract"
	"srer/pkg/logger"
	"srer/pkg/metadata"
	"srer/pkg/models"
	"srer/pkg/ratelimit"
	"srer/pkg/repeatphoto"
	"srer/pkg/report"
)

// PipelineName labels scrape reports
const PipelineName = "scrape-metadata"

// Scraper visits station pages one at a time and collects photo records
type Scraper struct {
	fetcher     PageFetcher
	extractor   extract.Extractor
	urlTemplate string
	logger      logger.Logger
	observers   []report.Observer
}

// New creates a Scraper from its parts
func New(fetcher PageFetcher, extractor extract.Extractor, urlTemplate string, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scraper{
		fetcher:     fetcher,
		extractor:   extractor,
		urlTemplate: urlTemplate,
		logger:      log,
	}
}

// NewFromConfig wires a Scraper to the repeat-photography site described by cfg
func NewFromConfig(cfg *config.Config, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}

	client := repeatphoto.NewClient(
		repeatphoto.WithLogger(log),
		repeatphoto.WithUserAgent(cfg.Upstream.UserAgent),
		repeatphoto.WithTimeouts(cfg.Upstream.PageTimeout, cfg.Download.Timeout),
		repeatphoto.WithLimiter(ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute)),
	)

	return New(
		client,
		extract.New(extract.SelectorsFromConfig(cfg.Selectors)),
		cfg.Upstream.StationURLTemplate,
		log,
	)
}

// Observe registers o on the report of every later run
func (s *Scraper) Observe(o report.Observer) {
	s.observers = append(s.observers, o)
}

// Scrape fetches the page of every station in order, duplicates included,
// and returns the records of all pages that could be fetched. A station
// that fails is logged, reported and skipped. Cancelling ctx stops the loop
// before the next station.
func (s *Scraper) Scrape(ctx context.Context, ids []models.StationID) ([]models.PhotoRecord, *report.Report) {
	rep := report.New(PipelineName)
	for _, o := range s.observers {
		rep.Observe(o)
	}
	rep.Start(len(ids))
	defer rep.Finish()

	logger.LogComponentStart(s.logger, PipelineName, map[string]interface{}{
		"stations": len(ids),
	})

	records := make([]models.PhotoRecord, 0)
	for i, id := range ids {
		if ctx.Err() != nil {
			s.logger.WarnWithFields("Scrape interrupted", map[string]interface{}{
				"remaining": len(ids) - i,
			})
			break
		}

		found, outcome := s.scrapeStation(ctx, id)
		records = append(records, found...)
		rep.Add(outcome)
	}

	logger.LogComponentStop(s.logger, PipelineName, map[string]interface{}{
		"records": len(records),
		"failed":  rep.Count(report.StatusFailed),
	})

	return records, rep
}

func (s *Scraper) scrapeStation(ctx context.Context, id models.StationID) ([]models.PhotoRecord, report.Outcome) {
	pageURL := repeatphoto.StationURL(s.urlTemplate, id)
	log := s.logger.WithFields(map[string]interface{}{
		"station_id": id.String(),
		"url":        pageURL,
	})
	outcome := report.Outcome{
		Operation: report.OperationFetchPage,
		StationID: id,
		Target:    pageURL,
	}

	start := time.Now()
	log.Debug("Fetching station page")

	body, err := s.fetcher.FetchPage(ctx, pageURL)
	if err == nil {
		var records []models.PhotoRecord
		records, err = s.extractor.Extract(id, bytes.NewReader(body))
		if err == nil {
			outcome.Status = report.StatusSuccess
			outcome.Records = int64(len(records))
			outcome.Duration = time.Since(start)
			log.InfoWithFields("Station scraped", map[string]interface{}{
				"records": len(records),
			})
			return records, outcome
		}
	}

	outcome.Status = report.StatusFailed
	outcome.Err = err
	outcome.Reason = string(errors.TypeOf(err))
	outcome.Duration = time.Since(start)
	log.WithError(err).Warn("Skipping station")

	return nil, outcome
}

// ScrapeToFile scrapes all stations and replaces the metadata file at path
// with the result. Nothing is written when ctx is cancelled mid-run.
func (s *Scraper) ScrapeToFile(ctx context.Context, ids []models.StationID, path string) (*report.Report, error) {
	records, rep := s.Scrape(ctx, ids)

	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("scrape interrupted, metadata not written: %w", err)
	}

	if err := metadata.Save(path, records); err != nil {
		s.logger.WithError(err).WithField("path", path).Error("Failed to write metadata")
		return rep, err
	}

	s.logger.InfoWithFields("Metadata written", map[string]interface{}{
		"path":    path,
		"records": len(records),
	})

	return rep, nil
}
