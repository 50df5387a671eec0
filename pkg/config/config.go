package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// StationPlaceholder is replaced by the station identifier in
// UpstreamConfig.StationURLTemplate.
const StationPlaceholder = "{station}"

// Config holds all configuration options for the srer tool
type Config struct {
	// Upstream site settings
	Upstream UpstreamConfig `yaml:"upstream" json:"upstream"`

	// CSS selectors used to pick photo entries out of station pages
	Selectors SelectorConfig `yaml:"selectors" json:"selectors"`

	// Input and output locations
	Paths PathsConfig `yaml:"paths" json:"paths"`

	// Image download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Request pacing
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Rain-gage GraphQL endpoint
	Gages GagesConfig `yaml:"gages" json:"gages"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// UpstreamConfig describes the repeat-photography website
type UpstreamConfig struct {
	BaseURL            string        `yaml:"base_url" json:"base_url"`
	StationURLTemplate string        `yaml:"station_url_template" json:"station_url_template"`
	UserAgent          string        `yaml:"user_agent" json:"user_agent"`
	PageTimeout        time.Duration `yaml:"page_timeout" json:"page_timeout"`
}

// SelectorConfig holds the CSS selectors for one photo entry and its parts.
// Empty values fall back to the extractor defaults.
type SelectorConfig struct {
	Entry     string `yaml:"entry" json:"entry"`
	Image     string `yaml:"image" json:"image"`
	ArchiveNo string `yaml:"archive_no" json:"archive_no"`
	Summary   string `yaml:"summary" json:"summary"`
	Direction string `yaml:"direction" json:"direction"`
}

// PathsConfig holds file system locations
type PathsConfig struct {
	StationsFile      string `yaml:"stations_file" json:"stations_file"`
	StationsHasHeader bool   `yaml:"stations_has_header" json:"stations_has_header"`
	StationsDelimiter string `yaml:"stations_delimiter" json:"stations_delimiter"`
	MetadataFile      string `yaml:"metadata_file" json:"metadata_file"`
	PhotoDirectory    string `yaml:"photo_directory" json:"photo_directory"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// RateLimitConfig holds request pacing configuration.
// RequestsPerMinute of 0 disables pacing.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// GagesConfig holds the rain-gage GraphQL client configuration
type GagesConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
	// Quiet suppresses console output; set while the TUI owns the terminal
	Quiet bool `yaml:"-" json:"-"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			BaseURL:            "https://santarita.arizona.edu",
			StationURLTemplate: "https://santarita.arizona.edu/photos/station/" + StationPlaceholder,
			UserAgent:          "srer-archiver/1.0 (+https://santarita.arizona.edu)",
			PageTimeout:        60 * time.Second,
		},
		Paths: PathsConfig{
			StationsFile:      filepath.Join("data", "srer", "stations.csv"),
			StationsDelimiter: ",",
			MetadataFile:      filepath.Join("data", "srer", "repeat_photography_metadata.json"),
			PhotoDirectory:    filepath.Join("data", "srer", "photos"),
		},
		Download: DownloadConfig{
			Timeout: 120 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 0,
		},
		Gages: GagesConfig{
			Endpoint: "http://localhost:8000/api/graphql",
			Timeout:  30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from SRER_* environment variables
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("SRER_BASE_URL"); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := os.Getenv("SRER_STATION_URL_TEMPLATE"); v != "" {
		c.Upstream.StationURLTemplate = v
	}
	if v := os.Getenv("SRER_USER_AGENT"); v != "" {
		c.Upstream.UserAgent = v
	}
	if v := os.Getenv("SRER_PAGE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SRER_PAGE_TIMEOUT: %w", err)
		}
		c.Upstream.PageTimeout = d
	}

	if v := os.Getenv("SRER_STATIONS_FILE"); v != "" {
		c.Paths.StationsFile = v
	}
	if v := os.Getenv("SRER_METADATA_FILE"); v != "" {
		c.Paths.MetadataFile = v
	}
	if v := os.Getenv("SRER_PHOTO_DIR"); v != "" {
		c.Paths.PhotoDirectory = v
	}

	if v := os.Getenv("SRER_DOWNLOAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SRER_DOWNLOAD_TIMEOUT: %w", err)
		}
		c.Download.Timeout = d
	}

	if v := os.Getenv("SRER_REQUESTS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SRER_REQUESTS_PER_MINUTE: %w", err)
		}
		c.RateLimit.RequestsPerMinute = n
	}

	if v := os.Getenv("SRER_GAGES_ENDPOINT"); v != "" {
		c.Gages.Endpoint = v
	}

	if v := os.Getenv("SRER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SRER_LOG_FILE"); v != "" {
		c.Logging.File = v
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// FindConfigFile searches for a config file in the standard locations
func FindConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".srer.yaml",
		".srer.yml",
		"srer.yaml",
		filepath.Join(home, ".config", "srer", "config.yaml"),
		filepath.Join(home, ".config", "srer", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if err := validateHTTPURL(c.Upstream.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("upstream base URL: %w", err))
	}
	if !strings.Contains(c.Upstream.StationURLTemplate, StationPlaceholder) {
		errs = append(errs, fmt.Errorf("station URL template must contain %s", StationPlaceholder))
	} else if err := validateHTTPURL(strings.ReplaceAll(c.Upstream.StationURLTemplate, StationPlaceholder, "x")); err != nil {
		errs = append(errs, fmt.Errorf("station URL template: %w", err))
	}
	if c.Upstream.PageTimeout <= 0 {
		errs = append(errs, errors.New("page timeout must be positive"))
	}

	errs = append(errs, c.Selectors.validate()...)

	if c.Paths.StationsFile == "" {
		errs = append(errs, errors.New("stations file is required"))
	}
	if len([]rune(c.Paths.StationsDelimiter)) > 1 {
		errs = append(errs, errors.New("stations delimiter must be a single character"))
	}
	if c.Paths.MetadataFile == "" {
		errs = append(errs, errors.New("metadata file is required"))
	}
	if c.Paths.PhotoDirectory == "" {
		errs = append(errs, errors.New("photo directory is required"))
	}

	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("requests per minute cannot be negative"))
	}
	if c.Gages.Timeout <= 0 {
		errs = append(errs, errors.New("gages timeout must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// validate compiles every configured selector. Empty selectors use the
// built-in defaults and are not checked.
func (s SelectorConfig) validate() []error {
	var errs []error
	for _, sel := range []struct{ name, value string }{
		{"entry", s.Entry},
		{"image", s.Image},
		{"archive_no", s.ArchiveNo},
		{"summary", s.Summary},
		{"direction", s.Direction},
	} {
		if sel.value == "" {
			continue
		}
		if _, err := cascadia.Compile(sel.value); err != nil {
			errs = append(errs, fmt.Errorf("selectors.%s: %w", sel.name, err))
		}
	}
	return errs
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Keys match the cobra flag names.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["stations"].(string); ok && v != "" {
		c.Paths.StationsFile = v
	}
	if v, ok := flags["metadata"].(string); ok && v != "" {
		c.Paths.MetadataFile = v
	}
	if v, ok := flags["output"].(string); ok && v != "" {
		c.Paths.PhotoDirectory = v
	}
	if v, ok := flags["rate-limit"].(int); ok && v >= 0 {
		c.RateLimit.RequestsPerMinute = v
	}
	if v, ok := flags["endpoint"].(string); ok && v != "" {
		c.Gages.Endpoint = v
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".srer.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
