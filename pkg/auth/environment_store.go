package auth

import (
	"os"
	"time"
)

// EnvironmentStore reads cookies from environment variables. It is read-only
// and exists mostly for CI and headless setups.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based cookie store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Save is not supported for environment variables
func (e *EnvironmentStore) Save(cookies *Cookies) error {
	return ErrStoreUnavailable
}

// Load gets cookies from environment variables
func (e *EnvironmentStore) Load() (*Cookies, error) {
	a := os.Getenv("FASCRAPER_COOKIE_A")
	b := os.Getenv("FASCRAPER_COOKIE_B")

	if a == "" || b == "" {
		return nil, ErrCookiesNotFound
	}

	return &Cookies{
		A:         a,
		B:         b,
		UserAgent: os.Getenv("FASCRAPER_USER_AGENT"),
		Saved:     time.Now(),
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks if environment cookies are set
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv("FASCRAPER_COOKIE_A") != "" && os.Getenv("FASCRAPER_COOKIE_B") != ""
}
