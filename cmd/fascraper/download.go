package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"fascraper/pkg/download"
)

var (
	// Download command flags
	downloadDir       string
	downloadOverwrite bool
	downloadThumb     bool
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <submission-id>...",
	Short: "Download submission files",
	Long: `Fetch one or more submission pages and download their files.

Files are named <uploader>-<id>.<ext> under the download directory; the
extension always comes from the file URL. Existing files are skipped
unless --overwrite is given.`,
	Example: `  # Download one submission to the default directory
  fascraper download 44726308

  # Download several to a specific directory
  fascraper download 44726308 44726309 --output ./art`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadDir, "output", "o", "", "download directory (default from config)")
	downloadCmd.Flags().BoolVar(&downloadOverwrite, "overwrite", false, "replace files that already exist")
	downloadCmd.Flags().BoolVar(&downloadThumb, "thumbnail", false, "download the thumbnail instead of the full file")
}

func runDownload(cmd *cobra.Command, args []string) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fatal(fmt.Sprintf("invalid submission id %q", arg), nil)
		}
		ids = append(ids, id)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load configuration", err)
	}
	if downloadDir != "" {
		cfg.Download.Directory = downloadDir
	}
	if downloadOverwrite {
		cfg.Download.Overwrite = true
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		fatal("login failed", err)
	}

	d := download.New(cfg, nil)

	failures := 0
	for _, id := range ids {
		sub, err := client.Submission(ctx, id)
		if err != nil {
			fmt.Printf("FAILED  %d: %v\n", id, err)
			failures++
			continue
		}

		file := sub.File
		if downloadThumb {
			file = sub.Thumb
		}

		dest := filepath.Join(cfg.Download.Directory, fmt.Sprintf("%s-%d", sub.Uploader, sub.ID))
		final, err := d.Fetch(ctx, file, dest)
		if err != nil {
			fmt.Printf("FAILED  %d: %v\n", id, err)
			failures++
			continue
		}

		fmt.Printf("saved   %d: %s\n", id, final)
	}

	if failures > 0 {
		fatal(fmt.Sprintf("%d of %d download(s) failed", failures, len(ids)), nil)
	}
}
