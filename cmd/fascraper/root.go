package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"fascraper/pkg/auth"
	"fascraper/pkg/config"
	"fascraper/pkg/furaffinity"
	"fascraper/pkg/logger"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	rateLimit  int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fascraper",
	Short: "Browse and download submissions from FurAffinity",
	Long: `fascraper is a command-line client for the FurAffinity gallery site.

It drives the site the way a logged-in browser would: you lend it the
session cookies from an existing browser login, and it scrapes search
results, user galleries and submission pages, and downloads submission
files.

Session cookies are stored securely using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (FASCRAPER_COOKIE_A / FASCRAPER_COOKIE_B)`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.fascraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&rateLimit, "rate-limit", 0, "page requests per minute (0 uses the configured value)")

	rootCmd.SetVersionTemplate(`fascraper {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig reads the config file and environment, then applies the
// global flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if logLevel != "info" {
		cfg.Logging.Level = logLevel
	}
	if rateLimit > 0 {
		cfg.RateLimit.RequestsPerMinute = rateLimit
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, err
	}

	return cfg, nil
}

// sessionCookies resolves cookies from the credential store first, then from
// config/env.
func sessionCookies(cfg *config.Config) (*auth.Cookies, error) {
	manager, err := auth.NewManager()
	if err == nil {
		if cookies, loadErr := manager.Load(); loadErr == nil && cookies.Valid() {
			return cookies, nil
		}
	}

	if cfg.FurAffinity.CookieA != "" && cfg.FurAffinity.CookieB != "" {
		return &auth.Cookies{A: cfg.FurAffinity.CookieA, B: cfg.FurAffinity.CookieB}, nil
	}

	return nil, fmt.Errorf("no session cookies found; run 'fascraper auth login' or set FASCRAPER_COOKIE_A and FASCRAPER_COOKIE_B")
}

// clientFromConfig builds an unauthenticated client
func clientFromConfig(cfg *config.Config) (*furaffinity.Client, error) {
	return furaffinity.New(cfg, logger.GetLogger())
}

// newClient builds a client from config and logs it in
func newClient(ctx context.Context, cfg *config.Config) (*furaffinity.Client, error) {
	cookies, err := sessionCookies(cfg)
	if err != nil {
		return nil, err
	}

	client, err := clientFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := client.Login(ctx, cookies); err != nil {
		return nil, err
	}

	return client, nil
}

func fatal(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
