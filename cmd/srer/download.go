package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"srer/internal/downloader"
	"srer/pkg/logger"
	"srer/pkg/ratelimit"
	"srer/pkg/repeatphoto"
	"srer/pkg/report"
	"srer/pkg/storage"
	"srer/pkg/ui"
)

var downloadUseTUI bool

var downloadCmd = &cobra.Command{
	Use:     "download-photos",
	Aliases: []string{"download-repeat-photography"},
	Short:   "Download the photos listed in the metadata file",
	Long: `Read the metadata file written by scrape-metadata and download every photo
into <output>/<station_id>/<file name>.

Records without a usable image URL are skipped without a request. Failed
downloads are reported and the run continues; existing files are replaced.`,
	Example: `  srer download-photos
  srer download-photos --metadata meta.json --output ./photos`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringP("metadata", "m", "", "metadata file to read")
	downloadCmd.Flags().StringP("output", "o", "", "photo root directory")
	downloadCmd.Flags().Int("rate-limit", 0, "maximum requests per minute (0 = unlimited)")
	downloadCmd.Flags().BoolVar(&downloadUseTUI, "tui", false, "show live progress in a terminal UI")
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, !downloadUseTUI)
	if err != nil {
		return err
	}
	log := logger.GetLogger()

	baseURL, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid upstream base URL: %w", err)
	}

	manager, err := storage.NewManager(cfg.Paths.PhotoDirectory)
	if err != nil {
		log.WithError(err).Error("Failed to prepare photo directory")
		return err
	}

	client := repeatphoto.NewClient(
		repeatphoto.WithLogger(log),
		repeatphoto.WithUserAgent(cfg.Upstream.UserAgent),
		repeatphoto.WithTimeouts(cfg.Upstream.PageTimeout, cfg.Download.Timeout),
		repeatphoto.WithLimiter(ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute)),
	)
	d := downloader.New(client, manager, baseURL, log)

	if !quiet && !downloadUseTUI {
		ui.PrintInfo("Metadata", cfg.Paths.MetadataFile)
		ui.PrintInfo("Photos", manager.Root())
	}

	err = runPipeline(cmd, downloadUseTUI, d, func(ctx context.Context) (*report.Report, error) {
		return d.RunFromFile(ctx, cfg.Paths.MetadataFile)
	})
	if err != nil {
		return err
	}

	if !quiet {
		ui.PrintSuccess(fmt.Sprintf("%d photos saved under %s", manager.SavedCount(), manager.Root()))
	}
	return nil
}
