package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fascraper/pkg/furaffinity"
)

var (
	// Browse command flags
	browsePage     int
	browseMaxPages int
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Browse a user's submissions",
}

var galleryCmd = &cobra.Command{
	Use:     "gallery <username>",
	Short:   "List a user's gallery",
	Example: `  fascraper user gallery fakeartist --max-pages 2`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBrowse(args[0], func(ctx context.Context, c *furaffinity.Client, opts furaffinity.BrowseOptions) ([]furaffinity.SearchResult, error) {
			return c.Gallery(ctx, args[0], opts)
		})
	},
}

var scrapsCmd = &cobra.Command{
	Use:   "scraps <username>",
	Short: "List a user's scraps",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBrowse(args[0], func(ctx context.Context, c *furaffinity.Client, opts furaffinity.BrowseOptions) ([]furaffinity.SearchResult, error) {
			return c.Scraps(ctx, args[0], opts)
		})
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites <username>",
	Short: "List a user's favorites",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBrowse(args[0], func(ctx context.Context, c *furaffinity.Client, opts furaffinity.BrowseOptions) ([]furaffinity.SearchResult, error) {
			return c.Favorites(ctx, args[0], opts)
		})
	},
}

var submissionsCmd = &cobra.Command{
	Use:   "submissions <username>",
	Short: "List a user's gallery and scraps together",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBrowse(args[0], func(ctx context.Context, c *furaffinity.Client, opts furaffinity.BrowseOptions) ([]furaffinity.SearchResult, error) {
			return c.Submissions(ctx, args[0], opts)
		})
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(galleryCmd)
	userCmd.AddCommand(scrapsCmd)
	userCmd.AddCommand(favoritesCmd)
	userCmd.AddCommand(submissionsCmd)

	userCmd.PersistentFlags().IntVar(&browsePage, "page", 1, "first page to fetch")
	userCmd.PersistentFlags().IntVar(&browseMaxPages, "max-pages", 0, "stop after this many pages (0 walks all)")
}

type browseFunc func(context.Context, *furaffinity.Client, furaffinity.BrowseOptions) ([]furaffinity.SearchResult, error)

func runBrowse(username string, browse browseFunc) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load configuration", err)
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		fatal("login failed", err)
	}

	results, err := browse(ctx, client, furaffinity.BrowseOptions{
		Page:     browsePage,
		MaxPages: browseMaxPages,
	})
	if err != nil {
		fatal(fmt.Sprintf("failed to browse %s", username), err)
	}

	for _, r := range results {
		fmt.Printf("%d\t%s\t%s\t%s by %s\n", r.ID, r.Rating, r.Kind, r.Title, r.Uploader)
	}
	fmt.Printf("\n%d result(s)\n", len(results))
}
