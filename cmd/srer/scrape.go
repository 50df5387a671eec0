package main

import (
	"context"

	"github.com/spf13/cobra"
	"srer/pkg/logger"
	"srer/pkg/report"
	"srer/pkg/scraper"
	"srer/pkg/stations"
	"srer/pkg/ui"
)

var scrapeUseTUI bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape-metadata",
	Short: "Scrape photo metadata for every station in the station list",
	Long: `Read station identifiers from the station list, fetch each station page
in order and write every photo entry found to the metadata file.

Stations that cannot be fetched are logged and skipped. The metadata file is
replaced at the end of the run.`,
	Example: `  # Use the configured paths
  srer scrape-metadata

  # Custom station list with a header row, paced to 30 requests per minute
  srer scrape-metadata --stations stations.csv --header --rate-limit 30`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringP("stations", "s", "", "station list file")
	scrapeCmd.Flags().Bool("header", false, "skip the first row of the station list")
	scrapeCmd.Flags().StringP("metadata", "m", "", "metadata output file")
	scrapeCmd.Flags().Int("rate-limit", 0, "maximum requests per minute (0 = unlimited)")
	scrapeCmd.Flags().BoolVar(&scrapeUseTUI, "tui", false, "show live progress in a terminal UI")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, !scrapeUseTUI)
	if err != nil {
		return err
	}

	ids, err := stations.Load(cfg.Paths.StationsFile, stations.Options{
		SkipHeader: cfg.Paths.StationsHasHeader,
		Delimiter:  cfg.Paths.StationsDelimiter,
	})
	if err != nil {
		logger.WithError(err).Error("Failed to load station list")
		return err
	}

	if !quiet && !scrapeUseTUI {
		ui.PrintInfo("Stations", cfg.Paths.StationsFile)
		ui.PrintInfo("Metadata", cfg.Paths.MetadataFile)
	}

	s := scraper.NewFromConfig(cfg, logger.GetLogger())
	err = runPipeline(cmd, scrapeUseTUI, s, func(ctx context.Context) (*report.Report, error) {
		return s.ScrapeToFile(ctx, ids, cfg.Paths.MetadataFile)
	})
	if err != nil {
		return err
	}

	if !quiet {
		ui.PrintSuccess("Metadata written to " + cfg.Paths.MetadataFile)
	}
	return nil
}
