package furaffinity

import (
	"bytes"
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"fascraper/pkg/auth"
	"fascraper/pkg/config"
	errs "fascraper/pkg/errors"
	"fascraper/pkg/logger"
	"fascraper/pkg/ratelimit"
)

// Client is an authenticated session against the gallery site. It is not
// safe for concurrent use; the caller owns any parallelism.
type Client struct {
	http     *resty.Client
	baseURL  *url.URL
	limiter  ratelimit.Limiter
	logger   logger.Logger
	loggedIn bool
}

// New creates a client from the given configuration. The client holds a
// cookie jar but no session until Login is called.
func New(cfg *config.Config, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL, err := url.Parse(cfg.FurAffinity.BaseURL)
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeUnknown, "invalid base URL %q: %v", cfg.FurAffinity.BaseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeUnknown, "failed to create cookie jar: %v", err)
	}

	httpClient := resty.New().
		SetBaseURL(cfg.FurAffinity.BaseURL).
		SetCookieJar(jar).
		SetHeader("User-Agent", cfg.FurAffinity.UserAgent).
		SetTimeout(cfg.FurAffinity.Timeout).
		SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseURL.Hostname()))

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		limiter: ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute),
		logger:  log,
	}, nil
}

// SetLimiter replaces the pacing between page fetches
func (c *Client) SetLimiter(limiter ratelimit.Limiter) {
	c.limiter = limiter
}

// Login installs session cookies on the jar and verifies them against the
// front page. The session stays valid until the site expires it; re-login
// is the only recovery.
func (c *Client) Login(ctx context.Context, cookies *auth.Cookies) error {
	if !cookies.Valid() {
		return errs.New(errs.ErrorTypeAuth, "incomplete cookie set: cookies \"a\" and \"b\" are both required")
	}

	c.http.SetCookies([]*http.Cookie{
		{Name: "a", Value: cookies.A, Path: "/"},
		{Name: "b", Value: cookies.B, Path: "/"},
	})
	if cookies.UserAgent != "" {
		c.http.SetHeader("User-Agent", cookies.UserAgent)
	}

	ok, err := c.LoggedIn(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(errs.ErrorTypeAuth, "session cookies rejected by the site")
	}

	c.loggedIn = true
	c.logger.Debug("logged in")
	return nil
}

// LoggedIn probes the front page for the logged-in username link
func (c *Client) LoggedIn(ctx context.Context) (bool, error) {
	doc, err := c.getDoc(ctx, frontPagePath)
	if err != nil {
		return false, err
	}
	return doc.Find("a#my-username").Length() > 0, nil
}

// requireLogin guards operations that only work with a session
func (c *Client) requireLogin() error {
	if !c.loggedIn {
		return errs.New(errs.ErrorTypeAuth, "not logged in")
	}
	return nil
}

// getDoc fetches a site page and parses it, mapping transport and status
// failures onto the error taxonomy
func (c *Client) getDoc(ctx context.Context, path string) (*goquery.Document, error) {
	return c.fetchDoc(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).Get(path)
	}, path)
}

// postDoc submits a form to a site page and parses the response
func (c *Client) postDoc(ctx context.Context, path string, form map[string]string) (*goquery.Document, error) {
	return c.fetchDoc(ctx, func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetFormData(form).Post(path)
	}, path)
}

func (c *Client) fetchDoc(ctx context.Context, do func() (*resty.Response, error), path string) (*goquery.Document, error) {
	c.limiter.Wait()

	start := time.Now()
	res, err := do()
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("request failed", map[string]interface{}{
			"path":     path,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errs.Newf(errs.ErrorTypeNetwork, "request to %s failed: %v", path, err)
	}

	c.logger.DebugWithFields("fetched page", map[string]interface{}{
		"path":     path,
		"status":   res.StatusCode(),
		"duration": duration,
	})

	if res.StatusCode() != http.StatusOK {
		return nil, errs.WithCode(errs.FromStatusCode(res.StatusCode()), res.StatusCode(),
			"unexpected status fetching "+path)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "failed to parse page %s: %v", path, err)
	}

	return doc, nil
}
