package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <submission-id>",
	Short: "Show a submission's details",
	Long: `Fetch a submission page and print its metadata: title, uploader,
rating, category, keywords, stats and the download URL.`,
	Example: `  fascraper get 44726308`,
	Args:    cobra.ExactArgs(1),
	Run:     runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatal(fmt.Sprintf("invalid submission id %q", args[0]), nil)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load configuration", err)
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		fatal("login failed", err)
	}

	sub, err := client.Submission(ctx, id)
	if err != nil {
		fatal(fmt.Sprintf("failed to fetch submission %d", id), err)
	}

	fmt.Printf("Title:     %s\n", sub.Title)
	fmt.Printf("Uploader:  %s\n", sub.Uploader)
	fmt.Printf("Rating:    %s\n", sub.Rating)
	fmt.Printf("Category:  %s > %s\n", sub.Category, sub.Theme)
	if sub.Species != "" {
		fmt.Printf("Species:   %s\n", sub.Species)
	}
	if sub.Gender != "" {
		fmt.Printf("Gender:    %s\n", sub.Gender)
	}
	if !sub.Posted.IsZero() {
		fmt.Printf("Posted:    %s\n", sub.Posted.Format("2006-01-02 15:04"))
	} else if sub.PostedRaw != "" {
		fmt.Printf("Posted:    %s\n", sub.PostedRaw)
	}
	fmt.Printf("Stats:     %d favorites, %d comments, %d views\n", sub.Favorites, sub.Comments, sub.Views)
	if len(sub.Keywords) > 0 {
		fmt.Printf("Keywords:  %s\n", strings.Join(sub.Keywords, ", "))
	}
	if len(sub.TaggedUsers) > 0 {
		fmt.Printf("Tagged:    %s\n", strings.Join(sub.TaggedUsers, ", "))
	}
	fmt.Printf("File:      %s\n", sub.File.URL)
	if sub.Description != "" {
		fmt.Printf("\n%s\n", sub.Description)
	}
}
