package furaffinity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fascraper/pkg/auth"
	"fascraper/pkg/config"
	errs "fascraper/pkg/errors"
	"fascraper/pkg/logger"
	"fascraper/pkg/ratelimit"
)

// fixture reads a recorded HTML page from testdata
func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// fixtureDoc parses a recorded HTML page into a document
func fixtureDoc(t *testing.T, name string) *goquery.Document {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	return doc
}

// docFromString parses inline HTML into a document
func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// serveFixture writes a recorded HTML page as the response body
func serveFixture(t *testing.T, w http.ResponseWriter, name string) {
	t.Helper()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(fixture(t, name))
	require.NoError(t, err)
}

func testConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.FurAffinity.BaseURL = baseURL
	cfg.FurAffinity.CookieA = "cookie-a-value"
	cfg.FurAffinity.CookieB = "cookie-b-value"
	return cfg
}

func testCookies() *auth.Cookies {
	return &auth.Cookies{A: "cookie-a-value", B: "cookie-b-value"}
}

// newTestClient spins up a server around the mux and returns a client
// pointed at it, with pacing disabled
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := New(testConfig(server.URL), logger.NewTestLogger())
	require.NoError(t, err)
	client.SetLimiter(ratelimit.Unlimited{})
	return client
}

// frontPageHandler serves the logged-in front page and captures the session
// cookies the client sends
func frontPageHandler(t *testing.T, gotCookies *map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if gotCookies != nil {
			cookies := make(map[string]string)
			for _, c := range r.Cookies() {
				cookies[c.Name] = c.Value
			}
			*gotCookies = cookies
		}
		serveFixture(t, w, "front_page_logged_in.html")
	}
}

func TestNew(t *testing.T) {
	client, err := New(testConfig("https://www.furaffinity.net"), logger.NewTestLogger())
	require.NoError(t, err)

	assert.NotNil(t, client.http)
	assert.Equal(t, "www.furaffinity.net", client.baseURL.Hostname())
	assert.False(t, client.loggedIn)
}

func TestNewInvalidBaseURL(t *testing.T) {
	cfg := testConfig("://not a url")
	_, err := New(cfg, logger.NewTestLogger())
	assert.Error(t, err)
}

func TestLoginInstallsCookies(t *testing.T) {
	var gotCookies map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/", frontPageHandler(t, &gotCookies))

	client := newTestClient(t, mux)
	require.NoError(t, client.Login(context.Background(), testCookies()))

	assert.Equal(t, "cookie-a-value", gotCookies["a"])
	assert.Equal(t, "cookie-b-value", gotCookies["b"])

	ok, err := client.LoggedIn(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginIncompleteCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", frontPageHandler(t, nil))

	client := newTestClient(t, mux)
	err := client.Login(context.Background(), &auth.Cookies{A: "only-a"})

	require.Error(t, err)
	assert.True(t, errs.IsAuth(err))
}

func TestLoginRejectedCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "front_page_logged_out.html")
	})

	client := newTestClient(t, mux)
	err := client.Login(context.Background(), testCookies())

	require.Error(t, err)
	assert.True(t, errs.IsAuth(err))
	assert.False(t, client.loggedIn)
}

func TestLoginNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close() // connection refused from here on

	client, err := New(testConfig(url), logger.NewTestLogger())
	require.NoError(t, err)
	client.SetLimiter(ratelimit.Unlimited{})

	err = client.Login(context.Background(), testCookies())
	require.Error(t, err)
	assert.True(t, errs.IsNetwork(err))
}

func TestFetchDocStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   errs.ErrorType
	}{
		{"unauthorized", http.StatusUnauthorized, errs.ErrorTypeAuth},
		{"forbidden", http.StatusForbidden, errs.ErrorTypeAuth},
		{"not found", http.StatusNotFound, errs.ErrorTypeNotFound},
		{"server error", http.StatusInternalServerError, errs.ErrorTypeServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			client := newTestClient(t, mux)
			_, err := client.getDoc(context.Background(), "/")

			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.want))
		})
	}
}
