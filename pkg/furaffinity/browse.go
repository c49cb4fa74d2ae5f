package furaffinity

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// watchlistRegex pulls usernames out of unwatch links on the buddy list
var watchlistRegex = regexp.MustCompile(`/unwatch/(.*)/\?key=[0-9a-f]*`)

// BrowseOptions control pagination of per-user listings
type BrowseOptions struct {
	// Page is the first page to fetch (1-based)
	Page int
	// MaxPages bounds how many pages to walk; 0 walks until the site
	// reports no more images
	MaxPages int
}

func (o BrowseOptions) normalized() BrowseOptions {
	if o.Page <= 0 {
		o.Page = 1
	}
	return o
}

// Gallery lists the submissions in a user's gallery
func (c *Client) Gallery(ctx context.Context, username string, opts BrowseOptions) ([]SearchResult, error) {
	return c.userSection(ctx, SectionGallery, username, opts)
}

// Scraps lists the submissions in a user's scraps
func (c *Client) Scraps(ctx context.Context, username string, opts BrowseOptions) ([]SearchResult, error) {
	return c.userSection(ctx, SectionScraps, username, opts)
}

// Favorites lists the submissions a user has favorited
func (c *Client) Favorites(ctx context.Context, username string, opts BrowseOptions) ([]SearchResult, error) {
	return c.userSection(ctx, SectionFavorites, username, opts)
}

// Submissions lists a user's gallery and scraps together
func (c *Client) Submissions(ctx context.Context, username string, opts BrowseOptions) ([]SearchResult, error) {
	gallery, err := c.Gallery(ctx, username, opts)
	if err != nil {
		return nil, err
	}
	scraps, err := c.Scraps(ctx, username, opts)
	if err != nil {
		return nil, err
	}
	return append(gallery, scraps...), nil
}

// userSection walks pages of a per-user listing until the site reports no
// more images or the page bound is reached
func (c *Client) userSection(ctx context.Context, section Section, username string, opts BrowseOptions) ([]SearchResult, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}
	opts = opts.normalized()

	var results []SearchResult
	for page := opts.Page; opts.MaxPages == 0 || page < opts.Page+opts.MaxPages; page++ {
		doc, err := c.getDoc(ctx, sectionPath(section, username, page))
		if err != nil {
			return nil, err
		}

		if doc.Find("div#no-images").Length() > 0 {
			break
		}

		container := doc.Find("#gallery-gallery")
		if container.Length() == 0 {
			return nil, errParseContainer("gallery")
		}

		pageResults, err := parseFigures(container)
		if err != nil {
			return nil, err
		}
		if len(pageResults) == 0 {
			break
		}
		results = append(results, pageResults...)
	}

	c.logger.DebugWithFields("listed user section", map[string]interface{}{
		"section":  string(section),
		"username": username,
		"results":  len(results),
	})

	return results, nil
}

// SubmissionQueue lists submissions from the new-submissions message
// center, following "more" links until the queue repeats on itself
func (c *Client) SubmissionQueue(ctx context.Context) ([]SearchResult, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	doc, err := c.getDoc(ctx, queuePath)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for {
		if strings.Contains(doc.Text(), "There are no submissions to list") {
			break
		}

		container := doc.Find("#messagecenter-submissions")
		if container.Length() == 0 {
			return nil, errParseContainer("message center")
		}

		pageResults, err := parseFigures(container)
		if err != nil {
			return nil, err
		}
		results = append(results, pageResults...)

		// The "more" link loops back to an old@ URL on the last page
		next, ok := doc.Find("a.more").First().Attr("href")
		if !ok || strings.Contains(next, "old@") {
			break
		}

		doc, err = c.getDoc(ctx, next)
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// NukeQueue clears the new-submissions queue through the message center's
// nuke button
func (c *Client) NukeQueue(ctx context.Context) error {
	if err := c.requireLogin(); err != nil {
		return err
	}

	_, err := c.postDoc(ctx, nukePath, map[string]string{
		"messagecenter-action": "Nuke+all+Submissions",
	})
	return err
}

// Watchlist returns the usernames the logged-in account watches. The buddy
// list wraps around past the last page, so collection stops at the first
// repeated username or an empty page.
func (c *Client) Watchlist(ctx context.Context) ([]string, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var users []string

	for page := 1; ; page++ {
		doc, err := c.getDoc(ctx, buddylistPath(page))
		if err != nil {
			return nil, err
		}

		found := 0
		repeated := false
		doc.Find("a").Each(func(_ int, a *goquery.Selection) {
			groups := watchlistRegex.FindStringSubmatch(a.AttrOr("href", ""))
			if groups == nil {
				return
			}
			found++
			username := clean(groups[1])
			if seen[username] {
				repeated = true
				return
			}
			seen[username] = true
			users = append(users, username)
		})

		if repeated || found == 0 {
			break
		}
	}

	return users, nil
}
