package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fascraper/pkg/furaffinity"
)

var (
	// Search command flags
	searchSort     string
	searchOrder    string
	searchRange    string
	searchPage     int
	searchMaxPages int
	searchRatings  []string
	searchTypes    []string
	searchTags     bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search submissions",
	Long: `Search submissions using the site's extended search form.

Results are printed one per line as:
  <id>  <rating>  <kind>  <title> by <uploader>`,
	Example: `  # Plain query, all ratings, default ordering
  fascraper search "winter wolf"

  # Search by tags instead of free text
  fascraper search --tags wolf winter

  # Newest general-rated stories, first two pages only
  fascraper search dragon --sort date --rating general --type story --max-pages 2`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchSort, "sort", "relevancy", "sort criteria (relevancy, date, popularity)")
	searchCmd.Flags().StringVar(&searchOrder, "order", "desc", "order direction (asc, desc)")
	searchCmd.Flags().StringVar(&searchRange, "range", "all", "time window (day, 3days, week, month, all)")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "first result page to fetch")
	searchCmd.Flags().IntVar(&searchMaxPages, "max-pages", 0, "stop after this many pages (0 walks all)")
	searchCmd.Flags().StringSliceVar(&searchRatings, "rating", nil, "ratings to include (general, mature, adult; default all)")
	searchCmd.Flags().StringSliceVar(&searchTypes, "type", nil, "types to include (art, flash, photo, music, story, poetry; default art,photo)")
	searchCmd.Flags().BoolVar(&searchTags, "tags", false, "treat the arguments as tags instead of a free-text query")
}

func runSearch(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load configuration", err)
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		fatal("login failed", err)
	}

	opts := furaffinity.SearchOptions{
		Sort:     searchSort,
		Order:    searchOrder,
		Range:    searchRange,
		Page:     searchPage,
		MaxPages: searchMaxPages,
		Ratings:  ratingFilter(searchRatings),
		Types:    typeFilter(searchTypes),
	}

	var pager *furaffinity.SearchPager
	if searchTags {
		pager = client.SearchTags(ctx, opts, args...)
	} else {
		pager = client.Search(ctx, strings.Join(args, " "), opts)
	}

	count := 0
	for pager.Next() {
		r := pager.Result()
		fmt.Printf("%d\t%s\t%s\t%s by %s\n", r.ID, r.Rating, r.Kind, r.Title, r.Uploader)
		count++
	}
	if err := pager.Err(); err != nil {
		fatal("search failed", err)
	}

	fmt.Printf("\n%d result(s)\n", count)
}

func ratingFilter(names []string) furaffinity.RatingFilter {
	var f furaffinity.RatingFilter
	for _, name := range names {
		switch strings.ToLower(name) {
		case "general":
			f.General = true
		case "mature":
			f.Mature = true
		case "adult":
			f.Adult = true
		default:
			fatal(fmt.Sprintf("unknown rating %q", name), nil)
		}
	}
	return f
}

func typeFilter(names []string) furaffinity.TypeFilter {
	var f furaffinity.TypeFilter
	for _, name := range names {
		switch strings.ToLower(name) {
		case "art":
			f.Art = true
		case "flash":
			f.Flash = true
		case "photo":
			f.Photo = true
		case "music":
			f.Music = true
		case "story":
			f.Story = true
		case "poetry":
			f.Poetry = true
		default:
			fatal(fmt.Sprintf("unknown type %q", name), nil)
		}
	}
	return f
}
