package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// queueCmd represents the queue command
var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Work with the new-submission queue",
	Long: `The queue holds new submissions from watched artists, the same list
the site shows under Messages > Submissions.`,
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued submissions",
	Run:   runQueueList,
}

var queueNukeCmd = &cobra.Command{
	Use:   "nuke",
	Short: "Clear the entire queue",
	Long:  `Remove every submission from the queue. This cannot be undone.`,
	Run:   runQueueNuke,
}

// watchlistCmd represents the watchlist command
var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "List the accounts you watch",
	Run:   runWatchlist,
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueNukeCmd)
	rootCmd.AddCommand(watchlistCmd)
}

func runQueueList(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load configuration", err)
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		fatal("login failed", err)
	}

	results, err := client.SubmissionQueue(ctx)
	if err != nil {
		fatal("failed to fetch queue", err)
	}

	for _, r := range results {
		fmt.Printf("%d\t%s\t%s\t%s by %s\n", r.ID, r.Rating, r.Kind, r.Title, r.Uploader)
	}
	fmt.Printf("\n%d queued submission(s)\n", len(results))
}

func runQueueNuke(cmd *cobra.Command, args []string) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Clear the ENTIRE submission queue? This cannot be undone! (yes/N): ")
	confirm, _ := reader.ReadString('\n')
	if strings.TrimSpace(confirm) != "yes" {
		return
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

	if err := client.NukeQueue(ctx); err != nil {
		fatal("failed to clear queue", err)
	}
	fmt.Println("Queue cleared.")
}

func runWatchlist(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load configuration", err)
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		fatal("login failed", err)
	}

	users, err := client.Watchlist(ctx)
	if err != nil {
		fatal("failed to fetch watchlist", err)
	}

	for _, user := range users {
		fmt.Println(user)
	}
	fmt.Printf("\n%d watched account(s)\n", len(users))
}
