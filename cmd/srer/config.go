package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"srer/pkg/config"
	"srer/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage srer configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (SRER_*), including a .env file
  - Configuration file
  - Default values (lowest priority)`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	Long: `Write the default configuration with every available option.

The file is created in the current directory as '.srer.yaml' unless a
different path is given with --config.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and the paths it names",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = ".srer.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		return fmt.Errorf("refusing to overwrite %s", configPath)
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		return err
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Point paths.stations_file at your station list")
	fmt.Fprintln(out, "2. Run 'srer config validate' to check the configuration")
	fmt.Fprintln(out, "3. Run 'srer scrape-metadata' then 'srer download-photos'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	ui.PrintHighlight("Current Configuration")
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))

	fmt.Fprintln(out, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(out, "1. Command line flags")
	fmt.Fprintln(out, "2. Environment variables (SRER_*)")
	source := configFile
	if source == "" {
		source = config.FindConfigFile()
	}
	if source != "" {
		fmt.Fprintf(out, "3. Configuration file: %s\n", source)
	} else {
		fmt.Fprintln(out, "3. Configuration file: (none found)")
	}
	fmt.Fprintln(out, "4. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	source := configFile
	if source == "" {
		source = config.FindConfigFile()
	}
	if source != "" {
		ui.PrintInfo("Validating configuration", source)
	} else {
		ui.PrintInfo("Validating configuration", "(defaults and environment)")
	}

	cfg, err := config.Load(source, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		return err
	}

	var warnings []string
	if _, err := os.Stat(cfg.Paths.StationsFile); err != nil {
		warnings = append(warnings, fmt.Sprintf("Station list not readable: %v", err))
	}
	if _, err := os.Stat(cfg.Paths.MetadataFile); errors.Is(err, os.ErrNotExist) {
		warnings = append(warnings, "Metadata file does not exist yet; run scrape-metadata first")
	}

	var problems []string
	if err := os.MkdirAll(cfg.Paths.PhotoDirectory, 0755); err != nil {
		problems = append(problems, fmt.Sprintf("Cannot create photo directory: %v", err))
	}
	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			problems = append(problems, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}

	out := cmd.OutOrStdout()
	if len(problems) > 0 {
		ui.PrintError("Configuration has errors:")
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return fmt.Errorf("%d configuration errors", len(problems))
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, w := range warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
		fmt.Fprintln(out)
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Fprintln(out, "\nConfiguration summary:")
	fmt.Fprintf(out, "  Station pages: %s\n", cfg.Upstream.StationURLTemplate)
	fmt.Fprintf(out, "  Station list: %s\n", cfg.Paths.StationsFile)
	fmt.Fprintf(out, "  Metadata file: %s\n", cfg.Paths.MetadataFile)
	fmt.Fprintf(out, "  Photo directory: %s\n", cfg.Paths.PhotoDirectory)
	if cfg.RateLimit.RequestsPerMinute > 0 {
		fmt.Fprintf(out, "  Rate limit: %d requests/minute\n", cfg.RateLimit.RequestsPerMinute)
	} else {
		fmt.Fprintln(out, "  Rate limit: none")
	}
	fmt.Fprintf(out, "  Log level: %s\n", cfg.Logging.Level)
	return nil
}
