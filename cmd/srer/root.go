package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"srer/pkg/config"
	"srer/pkg/logger"
	"srer/pkg/ui"
)

var (
	// Version information
	version   = "0.1.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	noColor    bool
	quiet      bool
	notify     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "srer",
	Short: "Archive the Santa Rita Experimental Range repeat photography collection",
	Long: `srer scrapes the repeat-photography station pages of the Santa Rita
Experimental Range website into a single metadata file, and downloads the
referenced photos into one directory per station.

Typical run:
  srer scrape-metadata      # stations.csv -> repeat_photography_metadata.json
  srer download-photos      # metadata -> photos/<station_id>/<file>`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.SetColorEnabled(false)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if cerr := logger.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, ui.Yellow("Warning: "+cerr.Error()))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Red("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.srer.yaml or ~/.config/srer/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "print only the final summary")
	rootCmd.PersistentFlags().BoolVar(&notify, "notify", false, "send a desktop notification when a run finishes")

	rootCmd.SetVersionTemplate(`srer {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig merges the flags that were set on cmd into the layered
// configuration and initializes the global logger from it.
func loadConfig(cmd *cobra.Command, consoleLogging bool) (*config.Config, error) {
	flags := make(map[string]interface{})
	for _, name := range []string{"stations", "metadata", "output", "endpoint", "log-level"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			flags[name] = f.Value.String()
		}
	}
	if f := cmd.Flags().Lookup("rate-limit"); f != nil && f.Changed {
		n, err := cmd.Flags().GetInt("rate-limit")
		if err != nil {
			return nil, err
		}
		flags["rate-limit"] = n
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("header"); f != nil && f.Changed {
		cfg.Paths.StationsHasHeader, _ = cmd.Flags().GetBool("header")
	}

	cfg.Logging.Quiet = !consoleLogging
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.WithField("version", version).Debug("srer starting")

	return cfg, nil
}
