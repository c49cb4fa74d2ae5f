package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fascraper/pkg/auth"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage FurAffinity session cookies",
	Long: `Manage stored FurAffinity session cookies securely.

Cookies are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (read-only fallback)

Never share your cookies or config files!`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store session cookies securely",
	Long: `Store FurAffinity session cookies in the system keychain or an
encrypted file.

You will be prompted for:
  - Cookie "a" value
  - Cookie "b" value
  - User Agent (optional, press Enter for default)

To get these values:
1. Log into FurAffinity in your browser
2. Open Developer Tools (F12)
3. Go to Application/Storage > Cookies
4. Find and copy the "a" and "b" values`,
	Example: `  fascraper auth login`,
	Run:     runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored session cookies",
	Run:   runLogout,
}

// statusCmd represents the auth status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the stored cookies still work",
	Long:  `Load the stored cookies and probe the site to verify the session is still valid.`,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fatal("failed to initialize credential manager", err)
	}

	reader := bufio.NewReader(os.Stdin)

	if manager.Exists() {
		fmt.Print("Stored cookies already exist. Replace them? (y/N): ")
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
	}

	fmt.Println("Enter your cookie values (they will be hidden as you type):")
	fmt.Println()

	fmt.Print("cookie \"a\" value: ")
	cookieA, err := readSecret()
	if err != nil {
		fatal("failed to read cookie", err)
	}

	fmt.Print("cookie \"b\" value: ")
	cookieB, err := readSecret()
	if err != nil {
		fatal("failed to read cookie", err)
	}

	fmt.Print("User Agent (press Enter to use default): ")
	userAgent, _ := reader.ReadString('\n')
	userAgent = strings.TrimSpace(userAgent)

	cookies := &auth.Cookies{
		A:         cookieA,
		B:         cookieB,
		UserAgent: userAgent,
		Saved:     time.Now(),
	}
	if !cookies.Valid() {
		fatal("both cookie values are required", nil)
	}

	// Verify the cookies against the site before storing them
	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load configuration", err)
	}

	fmt.Println("\nVerifying cookies against the site...")
	client, err := clientFromConfig(cfg)
	if err != nil {
		fatal("failed to create client", err)
	}
	if err := client.Login(context.Background(), cookies); err != nil {
		fatal("cookie verification failed", err)
	}

	if err := manager.Save(cookies); err != nil {
		fatal("failed to store cookies", err)
	}

	fmt.Println("Cookies verified and stored.")
	fmt.Println("\nQuick start:")
	fmt.Println("  fascraper search \"winter wolf\"")
	fmt.Println("  fascraper get 44726308")
	fmt.Println("  fascraper download 44726308")
}

func runLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		fatal("failed to initialize credential manager", err)
	}

	if !manager.Exists() {
		fmt.Println("No stored cookies found.")
		return
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Remove stored cookies? (y/N): ")
	input, _ := reader.ReadString('\n')
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
		return
	}

	if err := manager.Delete(); err != nil {
		fatal("failed to remove cookies", err)
	}
	fmt.Println("Cookies removed.")
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load configuration", err)
	}

	cookies, err := sessionCookies(cfg)
	if err != nil {
		fatal("no cookies available", err)
	}

	client, err := clientFromConfig(cfg)
	if err != nil {
		fatal("failed to create client", err)
	}

	if err := client.Login(context.Background(), cookies); err != nil {
		fmt.Println("Session is NOT valid:", err)
		os.Exit(1)
	}

	fmt.Println("Session is valid.")
	if !cookies.Saved.IsZero() {
		fmt.Printf("Cookies stored: %s\n", cookies.Saved.Format("2006-01-02 15:04:05"))
	}
}

// readSecret reads a value from stdin without echoing
func readSecret() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(secret)), nil
		}
	}

	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
