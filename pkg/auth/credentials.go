package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Store errors
var (
	ErrInvalidCookies   = errors.New("invalid cookies: both session cookies are required")
	ErrCookiesNotFound  = errors.New("no stored cookies found")
	ErrStoreUnavailable = errors.New("store does not support this operation")
)

// Cookies holds a FurAffinity session: the two named cookie values the site
// issues at login, plus the user agent they were issued under
type Cookies struct {
	A         string    `json:"a"`
	B         string    `json:"b"`
	UserAgent string    `json:"user_agent,omitempty"`
	Saved     time.Time `json:"saved"`
}

// Valid reports whether the cookie set is complete
func (c *Cookies) Valid() bool {
	return c != nil && c.A != "" && c.B != ""
}

// Store is the interface for persisting session cookies
type Store interface {
	// Save persists the cookie set
	Save(cookies *Cookies) error

	// Load retrieves the stored cookie set
	Load() (*Cookies, error)

	// Delete removes the stored cookie set
	Delete() error

	// Exists checks if a cookie set is stored
	Exists() bool
}

// Manager handles cookie storage with fallback mechanisms
type Manager struct {
	stores []Store
}

// NewManager creates a new cookie manager with the available storage
// backends: system keychain first, encrypted file second, environment
// variables last
func NewManager() (*Manager, error) {
	var stores []Store

	keyringStore, err := NewKeyringStore()
	if err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "session.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager over an explicit store chain
func NewManagerWithStores(stores ...Store) *Manager {
	return &Manager{stores: stores}
}

// Save persists cookies using the first store that accepts them
func (m *Manager) Save(cookies *Cookies) error {
	if !cookies.Valid() {
		return ErrInvalidCookies
	}
	if cookies.Saved.IsZero() {
		cookies.Saved = time.Now()
	}

	var lastErr error
	for _, store := range m.stores {
		if err := store.Save(cookies); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("all stores failed: %w", lastErr)
	}
	return errors.New("no stores available")
}

// Load retrieves cookies from the first store that has them
func (m *Manager) Load() (*Cookies, error) {
	for _, store := range m.stores {
		cookies, err := store.Load()
		if err == nil && cookies.Valid() {
			return cookies, nil
		}
	}
	return nil, ErrCookiesNotFound
}

// Delete removes cookies from every store that holds them
func (m *Manager) Delete() error {
	deleted := false
	for _, store := range m.stores {
		if store.Exists() {
			if err := store.Delete(); err != nil && !errors.Is(err, ErrStoreUnavailable) {
				return err
			}
			deleted = true
		}
	}
	if !deleted {
		return ErrCookiesNotFound
	}
	return nil
}

// Exists checks whether any store holds cookies
func (m *Manager) Exists() bool {
	for _, store := range m.stores {
		if store.Exists() {
			return true
		}
	}
	return false
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "fascraper")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("APPDATA environment variable not set")
		}
		configDir = filepath.Join(appData, "fascraper")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "fascraper")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "fascraper")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}
