package downloader

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"srer/pkg/errors"
	"srer/pkg/logger"
	"srer/pkg/metadata"
	"srer/pkg/models"
	"srer/pkg/report"
	"srer/pkg/storage"
)

// PipelineName labels download reports
const PipelineName = "download-photos"

// PhotoFetcher downloads image binaries
type PhotoFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// PhotoStorage stores images in per-station directories
type PhotoStorage interface {
	EnsureStationDir(station string) (string, error)
	SaveFile(r io.Reader, station, filename string) (int64, error)
}

// Downloader fetches the image of every metadata record, one at a time
type Downloader struct {
	client  PhotoFetcher
	storage PhotoStorage
	baseURL *url.URL
	logger  logger.Logger

	observers []report.Observer
}

// New creates a Downloader. baseURL resolves relative image references and
// may be nil, in which case relative references are skipped.
func New(client PhotoFetcher, store PhotoStorage, baseURL *url.URL, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Downloader{
		client:  client,
		storage: store,
		baseURL: baseURL,
		logger:  log,
	}
}

// Observe registers o on the report of every later run
func (d *Downloader) Observe(o report.Observer) {
	d.observers = append(d.observers, o)
}

// RunFromFile loads the metadata document at path and downloads its images
func (d *Downloader) RunFromFile(ctx context.Context, path string) (*report.Report, error) {
	records, err := metadata.Load(path)
	if err != nil {
		return nil, err
	}
	return d.Run(ctx, records)
}

// Run downloads the image of each record in order. Unusable references are
// skipped without a request and fetch failures are reported; both leave the
// run going. Filesystem errors stop the run and are returned.
func (d *Downloader) Run(ctx context.Context, records []models.PhotoRecord) (*report.Report, error) {
	rep := report.New(PipelineName)
	for _, o := range d.observers {
		rep.Observe(o)
	}
	rep.Start(len(records))
	defer rep.Finish()

	logger.LogComponentStart(d.logger, PipelineName, map[string]interface{}{
		"records": len(records),
	})

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("download interrupted: %w", err)
		}

		outcome, err := d.handle(ctx, record)
		rep.Add(outcome)
		if err != nil {
			return rep, err
		}
	}

	logger.LogComponentStop(d.logger, PipelineName, map[string]interface{}{
		"downloaded": rep.Count(report.StatusSuccess),
		"skipped":    rep.Count(report.StatusSkipped),
		"failed":     rep.Count(report.StatusFailed),
	})

	return rep, nil
}

func (d *Downloader) handle(ctx context.Context, record models.PhotoRecord) (report.Outcome, error) {
	station := record.StationID.String()
	log := d.logger.WithFields(map[string]interface{}{
		"station_id": station,
		"photo_href": record.PhotoHref,
	})
	outcome := report.Outcome{
		Operation: report.OperationDownloadImage,
		StationID: record.StationID,
		Target:    record.PhotoHref,
	}

	if err := storage.ValidateName(station); err != nil {
		outcome.Status = report.StatusSkipped
		outcome.Reason = "unsafe station id"
		log.Warn("Skipping record with unsafe station id")
		return outcome, nil
	}

	if _, err := d.storage.EnsureStationDir(station); err != nil {
		outcome.Status = report.StatusFailed
		outcome.Err = err
		outcome.Reason = string(errors.ErrorTypeFilesystem)
		log.WithError(err).Error("Failed to create station directory")
		return outcome, errors.New(errors.ErrorTypeFilesystem, station, "failed to create station directory", err)
	}

	if !record.HasPhoto() {
		outcome.Status = report.StatusSkipped
		outcome.Reason = "no image reference"
		log.Debug("Skipping record without image reference")
		return outcome, nil
	}

	imageURL, filename, err := ResolveImageURL(d.baseURL, record.PhotoHref)
	if err != nil {
		outcome.Status = report.StatusSkipped
		outcome.Reason = reasonOf(err)
		log.WithField("reason", outcome.Reason).Debug("Skipping record without usable image")
		return outcome, nil
	}
	outcome.Target = imageURL.String()

	start := time.Now()
	data, err := d.client.FetchImage(ctx, imageURL.String())
	if err != nil {
		outcome.Status = report.StatusFailed
		outcome.Err = err
		outcome.Reason = string(errors.TypeOf(err))
		outcome.Duration = time.Since(start)
		log.WithError(err).Warn("Image download failed")
		return outcome, nil
	}

	written, err := d.storage.SaveFile(bytes.NewReader(data), station, filename)
	outcome.Duration = time.Since(start)
	if err != nil {
		outcome.Status = report.StatusFailed
		outcome.Err = err
		outcome.Reason = string(errors.ErrorTypeFilesystem)
		log.WithError(err).Error("Failed to write image")
		return outcome, errors.New(errors.ErrorTypeFilesystem, filename, "failed to write image", err)
	}

	outcome.Status = report.StatusSuccess
	outcome.Records = written
	log.InfoWithFields("Image saved", map[string]interface{}{
		"file":  filename,
		"bytes": written,
	})

	return outcome, nil
}

func reasonOf(err error) string {
	var typed *errors.Error
	if stderrors.As(err, &typed) {
		return typed.Message
	}
	return err.Error()
}
