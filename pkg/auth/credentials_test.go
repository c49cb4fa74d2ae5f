package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookiesValid(t *testing.T) {
	tests := []struct {
		name    string
		cookies *Cookies
		want    bool
	}{
		{"complete", &Cookies{A: "aaa", B: "bbb"}, true},
		{"missing a", &Cookies{B: "bbb"}, false},
		{"missing b", &Cookies{A: "aaa"}, false},
		{"empty", &Cookies{}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cookies.Valid())
		})
	}
}

func TestMockStoreRoundTrip(t *testing.T) {
	store := NewMockStore()

	assert.False(t, store.Exists())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCookiesNotFound)

	cookies := &Cookies{A: "aaa", B: "bbb", UserAgent: "test-agent"}
	require.NoError(t, store.Save(cookies))
	assert.True(t, store.Exists())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "aaa", loaded.A)
	assert.Equal(t, "bbb", loaded.B)
	assert.Equal(t, "test-agent", loaded.UserAgent)

	require.NoError(t, store.Delete())
	assert.False(t, store.Exists())
}

func TestEncryptedFileStoreRoundTrip(t *testing.T) {
	t.Setenv("FASCRAPER_PASSPHRASE", "test-passphrase")

	dir := t.TempDir()
	store, err := NewEncryptedFileStore(filepath.Join(dir, "session.enc"))
	require.NoError(t, err)

	assert.False(t, store.Exists())

	cookies := &Cookies{A: "cookie-a-value", B: "cookie-b-value"}
	require.NoError(t, store.Save(cookies))
	assert.True(t, store.Exists())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cookies.A, loaded.A)
	assert.Equal(t, cookies.B, loaded.B)

	require.NoError(t, store.Delete())
	assert.False(t, store.Exists())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrCookiesNotFound)
}

func TestEncryptedFileStoreWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.enc")

	t.Setenv("FASCRAPER_PASSPHRASE", "first")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(&Cookies{A: "a", B: "b"}))

	t.Setenv("FASCRAPER_PASSPHRASE", "second")
	store2, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	_, err = store2.Load()
	assert.Error(t, err)
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	t.Run("unset", func(t *testing.T) {
		t.Setenv("FASCRAPER_COOKIE_A", "")
		t.Setenv("FASCRAPER_COOKIE_B", "")

		assert.False(t, store.Exists())
		_, err := store.Load()
		assert.ErrorIs(t, err, ErrCookiesNotFound)
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv("FASCRAPER_COOKIE_A", "env-a")
		t.Setenv("FASCRAPER_COOKIE_B", "env-b")

		assert.True(t, store.Exists())
		cookies, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "env-a", cookies.A)
		assert.Equal(t, "env-b", cookies.B)
	})

	t.Run("read only", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(&Cookies{A: "a", B: "b"}), ErrStoreUnavailable)
		assert.ErrorIs(t, store.Delete(), ErrStoreUnavailable)
	})
}

func TestManagerFallback(t *testing.T) {
	failing := NewMockStore()
	failing.SaveError = errors.New("store broken")
	failing.LoadError = errors.New("store broken")

	working := NewMockStore()
	manager := NewManagerWithStores(failing, working)

	cookies := &Cookies{A: "aaa", B: "bbb"}
	require.NoError(t, manager.Save(cookies))

	// saved through the second store
	assert.False(t, failing.Exists())
	assert.True(t, working.Exists())

	loaded, err := manager.Load()
	require.NoError(t, err)
	assert.Equal(t, "aaa", loaded.A)

	require.NoError(t, manager.Delete())
	assert.False(t, manager.Exists())
}

func TestManagerRejectsIncompleteCookies(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())
	assert.ErrorIs(t, manager.Save(&Cookies{A: "only-a"}), ErrInvalidCookies)
}
