package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fascraper/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage fascraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (FASCRAPER_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is created as '.fascraper.yaml' in the current directory unless
a different path is given with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging all sources. Session cookie
values are masked.`,
	Run: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

const exampleConfig = `# fascraper configuration file
#
# Every option can also be set through environment variables prefixed
# with FASCRAPER_, for example FASCRAPER_COOKIE_A or FASCRAPER_LOG_LEVEL.

furaffinity:
  # Session cookies from a logged-in browser. Prefer 'fascraper auth login'
  # over keeping these in a file.
  cookie_a: ""
  cookie_b: ""

  # Site root; leave as-is unless you are testing against a mirror
  base_url: "https://www.furaffinity.net"

  # User agent string (optional, leave empty to use default)
  user_agent: ""

  # Page request timeout
  timeout: 30s

rate_limit:
  # Page requests per minute
  requests_per_minute: 60

download:
  # Where downloaded files land
  directory: "./downloads"

  # File download timeout
  timeout: 2m

  # Replace files that already exist
  overwrite: false

logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional, empty logs to stderr)
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = ".fascraper.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		fatal("configuration file already exists: "+configPath, nil)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		fatal("failed to create configuration file", err)
	}

	fmt.Println("Configuration file created:", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Run 'fascraper auth login' to store your session cookies")
	fmt.Println("2. Start browsing with 'fascraper search <query>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile)
	if err != nil {
		fatal("failed to load configuration", err)
	}

	display := *cfg
	display.FurAffinity.CookieA = maskSecret(display.FurAffinity.CookieA)
	display.FurAffinity.CookieB = maskSecret(display.FurAffinity.CookieB)

	data, err := yaml.Marshal(&display)
	if err != nil {
		fatal("failed to format configuration", err)
	}
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (FASCRAPER_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (searched in standard locations)")
	}
	fmt.Println("4. Default values")
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) > 8 {
		return s[:4] + "..." + s[len(s)-4:]
	}
	return "***"
}
