package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production site root
const DefaultBaseURL = "https://www.furaffinity.net"

// Config holds all configuration options for the FurAffinity client
type Config struct {
	// Session credentials and site settings
	FurAffinity FurAffinityConfig `yaml:"furaffinity" json:"furaffinity"`

	// Rate limiting between successive page fetches
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// FurAffinityConfig holds site-specific configuration
type FurAffinityConfig struct {
	// CookieA and CookieB are the two named session cookies ("a" and "b")
	CookieA   string        `yaml:"cookie_a" json:"cookie_a"`
	CookieB   string        `yaml:"cookie_b" json:"cookie_b"`
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	Directory string        `yaml:"directory" json:"directory"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	Overwrite bool          `yaml:"overwrite" json:"overwrite"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		FurAffinity: FurAffinityConfig{
			BaseURL:   DefaultBaseURL,
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			Timeout:   30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Download: DownloadConfig{
			Directory: "./downloads",
			Timeout:   2 * time.Minute,
			Overwrite: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds a configuration from defaults, an optional YAML file and
// environment overrides, in that order of precedence
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables, reading a
// .env file first if one is present
func (c *Config) LoadFromEnv() error {
	// A missing .env file is not an error
	_ = godotenv.Load()

	if a := os.Getenv("FASCRAPER_COOKIE_A"); a != "" {
		c.FurAffinity.CookieA = a
	}
	if b := os.Getenv("FASCRAPER_COOKIE_B"); b != "" {
		c.FurAffinity.CookieB = b
	}
	if base := os.Getenv("FASCRAPER_BASE_URL"); base != "" {
		c.FurAffinity.BaseURL = base
	}
	if ua := os.Getenv("FASCRAPER_USER_AGENT"); ua != "" {
		c.FurAffinity.UserAgent = ua
	}

	if rpm := os.Getenv("FASCRAPER_REQUESTS_PER_MINUTE"); rpm != "" {
		val, err := strconv.Atoi(rpm)
		if err == nil && val > 0 {
			c.RateLimit.RequestsPerMinute = val
		}
	}

	if dir := os.Getenv("FASCRAPER_DOWNLOAD_DIR"); dir != "" {
		c.Download.Directory = dir
	}

	if level := os.Getenv("FASCRAPER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file. An empty path searches
// the standard locations; finding no file at all is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
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

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".fascraper.yaml",
		".fascraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "fascraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "fascraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".fascraper.yaml"),
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

	if c.FurAffinity.CookieA == "" {
		errs = append(errs, errors.New("session cookie \"a\" is required"))
	}
	if c.FurAffinity.CookieB == "" {
		errs = append(errs, errors.New("session cookie \"b\" is required"))
	}
	if c.FurAffinity.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required"))
	}
	if c.FurAffinity.Timeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}

	if c.Download.Directory == "" {
		errs = append(errs, errors.New("download directory is required"))
	}
	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
