package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"

	"fascraper/pkg/config"
	errs "fascraper/pkg/errors"
	"fascraper/pkg/furaffinity"
	"fascraper/pkg/logger"
)

// Downloader streams submission files to disk. No retry, checksum or
// resume logic; a failed download leaves no partial file behind.
type Downloader struct {
	http      *resty.Client
	logger    logger.Logger
	overwrite bool
}

// New creates a downloader. File URLs point at the site's CDN and need no
// session cookies.
func New(cfg *config.Config, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}

	httpClient := resty.New().
		SetHeader("User-Agent", cfg.FurAffinity.UserAgent).
		SetTimeout(cfg.Download.Timeout).
		SetDoNotParseResponse(true)

	return &Downloader{
		http:      httpClient,
		logger:    log,
		overwrite: cfg.Download.Overwrite,
	}
}

// Fetch performs a streamed GET of the file URL and writes it verbatim to
// disk, creating parent directories as needed. Any extension on the
// destination is discarded in favor of the one carried by the URL; the
// final path is returned.
func (d *Downloader) Fetch(ctx context.Context, file furaffinity.File, destination string) (string, error) {
	if file.URL == "" {
		return "", errs.New(errs.ErrorTypeIO, "file has no URL to download")
	}

	base := strings.TrimSuffix(destination, filepath.Ext(destination))
	final := base
	if ext := file.Ext(); ext != "" {
		final = base + "." + ext
	}

	if !d.overwrite {
		if _, err := os.Stat(final); err == nil {
			d.logger.DebugWithFields("file already downloaded", map[string]interface{}{
				"path": final,
			})
			return final, nil
		}
	}

	if dir := filepath.Dir(final); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errs.Newf(errs.ErrorTypeIO, "failed to create destination directory: %v", err)
		}
	}

	body, err := d.open(ctx, file.URL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	// Stream into a temp file, then rename into place
	tempPath := base + ".part"
	out, err := os.Create(tempPath)
	if err != nil {
		return "", errs.Newf(errs.ErrorTypeIO, "failed to create temporary file: %v", err)
	}

	written, copyErr := io.Copy(out, body)
	closeErr := out.Close()

	if copyErr != nil {
		os.Remove(tempPath)
		return "", errs.Newf(errs.ErrorTypeNetwork, "download of %s failed after %d bytes: %v", file.URL, written, copyErr)
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return "", errs.Newf(errs.ErrorTypeIO, "failed to close temporary file: %v", closeErr)
	}

	if err := os.Rename(tempPath, final); err != nil {
		os.Remove(tempPath)
		return "", errs.Newf(errs.ErrorTypeIO, "failed to move file into place: %v", err)
	}

	d.logger.InfoWithFields("downloaded file", map[string]interface{}{
		"url":   file.URL,
		"path":  final,
		"bytes": written,
	})

	return final, nil
}

// open starts a streamed GET of the URL and hands back the raw body
func (d *Downloader) open(ctx context.Context, url string) (io.ReadCloser, error) {
	res, err := d.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeNetwork, "request to %s failed: %v", url, err)
	}

	if res.StatusCode() != http.StatusOK {
		res.RawBody().Close()
		return nil, errs.WithCode(errs.FromStatusCode(res.StatusCode()), res.StatusCode(),
			fmt.Sprintf("unexpected status downloading %s", url))
	}

	return res.RawBody(), nil
}
