package auth

import "sync"

// MockStore implements Store for testing purposes
type MockStore struct {
	cookies *Cookies
	mu      sync.RWMutex

	// Error injection for testing
	SaveError   error
	LoadError   error
	DeleteError error
}

// NewMockStore creates a new mock cookie store
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Save saves cookies to the mock store
func (m *MockStore) Save(cookies *Cookies) error {
	if m.SaveError != nil {
		return m.SaveError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !cookies.Valid() {
		return ErrInvalidCookies
	}

	c := *cookies
	m.cookies = &c
	return nil
}

// Load retrieves cookies from the mock store
func (m *MockStore) Load() (*Cookies, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cookies == nil {
		return nil, ErrCookiesNotFound
	}

	c := *m.cookies
	return &c, nil
}

// Delete removes cookies from the mock store
func (m *MockStore) Delete() error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cookies == nil {
		return ErrCookiesNotFound
	}

	m.cookies = nil
	return nil
}

// Exists checks if cookies are present in the mock store
func (m *MockStore) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cookies != nil
}
