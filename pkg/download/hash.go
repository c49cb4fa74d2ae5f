package download

import (
	"context"
	"hash"
	"io"
	"os"

	errs "fascraper/pkg/errors"
	"fascraper/pkg/furaffinity"
)

// Hash streams the file's remote content through h and returns the digest.
// Prefer HashFile when a local copy already exists.
func (d *Downloader) Hash(ctx context.Context, file furaffinity.File, h hash.Hash) ([]byte, error) {
	body, err := d.open(ctx, file.URL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if _, err := io.Copy(h, body); err != nil {
		return nil, errs.Newf(errs.ErrorTypeNetwork, "hashing %s failed: %v", file.URL, err)
	}

	return h.Sum(nil), nil
}

// HashFile streams a previously downloaded file through h and returns the
// digest
func HashFile(path string, h hash.Hash) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeIO, "failed to open %s: %v", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return nil, errs.Newf(errs.ErrorTypeIO, "failed to read %s: %v", path, err)
	}

	return h.Sum(nil), nil
}
