package furaffinity

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	errs "fascraper/pkg/errors"
)

// titleUploaderRegex pulls the submission title and uploader handle out of
// the page title, e.g. "Test File by Fakeartist -- Fur Affinity [dot] net"
var titleUploaderRegex = regexp.MustCompile(`(.+) by (.+) --`)

// categoryThemeRegex splits the "Category > Theme" metadata value
var categoryThemeRegex = regexp.MustCompile(` ?(.+) > (.+)`)

const keywordHrefPrefix = "/search/@keywords "

// Submission is the full record behind a search result. It is an immutable
// value object; its file URL stays valid only while the owning session is
// authenticated.
type Submission struct {
	ID          int64
	Title       string
	Uploader    string
	Description string

	Category string
	Theme    string
	Species  string
	Gender   string
	Rating   Rating

	Favorites int
	Comments  int
	Views     int

	Keywords    []string
	TaggedUsers []string

	// Posted is the upload timestamp; PostedRaw keeps the site's original
	// string form
	Posted    time.Time
	PostedRaw string

	File  File
	Thumb File
}

// Submission fetches and parses a submission's detail page. Pass a
// SearchResult's ID to dereference it.
func (c *Client) Submission(ctx context.Context, id int64) (*Submission, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	doc, err := c.getDoc(ctx, viewPath(id))
	if err != nil {
		return nil, err
	}

	if err := classifyErrorPage(doc, id); err != nil {
		return nil, err
	}

	sub, err := parseSubmission(doc, id)
	if err != nil {
		return nil, err
	}

	c.logger.DebugWithFields("fetched submission", map[string]interface{}{
		"id":       sub.ID,
		"uploader": sub.Uploader,
		"file":     sub.File.Filename(),
	})

	return sub, nil
}

// classifyErrorPage recognizes the site's failure pages, which come back
// with status 200 and an explanatory message
func classifyErrorPage(doc *goquery.Document, id int64) error {
	title := clean(doc.Find("title").First().Text())
	body := doc.Text()

	switch {
	case title == "System Error":
		return errs.Newf(errs.ErrorTypeNotFound, "submission %d does not exist or has been removed", id)
	case strings.Contains(body, "Your IP address has been banned"):
		return errs.New(errs.ErrorTypeIPBan, "this IP address is banned from the site")
	case strings.Contains(body, "This submission contains Mature or Adult content"):
		return errs.Newf(errs.ErrorTypeMaturity, "submission %d is blocked by the account's maturity filter", id)
	case strings.Contains(body, "You are not allowed to view this image"):
		return errs.Newf(errs.ErrorTypeAccess, "access to submission %d was denied", id)
	}
	return nil
}

// parseSubmission extracts the full record from a detail page document
func parseSubmission(doc *goquery.Document, id int64) (*Submission, error) {
	sub := &Submission{ID: id}

	pageTitle := clean(doc.Find("title").First().Text())
	groups := titleUploaderRegex.FindStringSubmatch(pageTitle)
	if groups == nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "submission %d: page title %q does not name a title and uploader", id, pageTitle)
	}
	sub.Title = clean(groups[1])
	sub.Uploader = clean(groups[2])

	fileURL, err := downloadURL(doc)
	if err != nil {
		return nil, err
	}
	sub.File = File{URL: fileURL}

	if preview, ok := doc.Find("img#submissionImg").Attr("data-preview-src"); ok {
		sub.Thumb = File{URL: absoluteURL(preview)}
	}

	sub.Description = clean(doc.Find("div.submission-description").First().Text())

	if categoryTheme := textAfterLabel(doc, "Category:"); categoryTheme != "" {
		if groups := categoryThemeRegex.FindStringSubmatch(categoryTheme); groups != nil {
			sub.Category = clean(groups[1])
			sub.Theme = clean(groups[2])
		}
	}
	sub.Species = textAfterLabel(doc, "Species:")
	sub.Gender = textAfterLabel(doc, "Gender:")

	if n, ok := statAfterHeading(doc, "Favs"); ok {
		sub.Favorites = n
	}
	if n, ok := statAfterHeading(doc, "Comments"); ok {
		sub.Comments = n
	}
	if n, ok := statAfterHeading(doc, "Views"); ok {
		sub.Views = n
	}

	sub.Rating = ParseRating(doc.Find("div.rating-box").First().Text())

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if strings.HasPrefix(href, keywordHrefPrefix) {
			if kw := clean(a.Text()); kw != "" {
				sub.Keywords = append(sub.Keywords, kw)
			}
		}
	})

	doc.Find("a.iconusername").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if user := clean(strings.TrimPrefix(href, "/user/")); user != "" {
			sub.TaggedUsers = append(sub.TaggedUsers, strings.TrimSuffix(user, "/"))
		}
	})

	raw, err := postedRaw(doc)
	if err != nil {
		return nil, err
	}
	sub.PostedRaw = raw

	// An unrecognized date string keeps its raw form; Posted stays zero
	if posted, err := parsePostedTime(raw); err == nil {
		sub.Posted = posted
	}

	return sub, nil
}

// downloadURL resolves the Download anchor's target
func downloadURL(doc *goquery.Document) (string, error) {
	var href string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if clean(a.Text()) != "Download" {
			return true
		}
		href = a.AttrOr("href", "")
		return false
	})

	if href == "" {
		return "", errs.New(errs.ErrorTypeParsing, "detail page has no download link")
	}
	return absoluteURL(href), nil
}

// postedRaw reads the upload timestamp. When the visible text is a relative
// "... ago" form, the absolute date lives in the title attribute.
func postedRaw(doc *goquery.Document) (string, error) {
	container := doc.Find("span.popup_date").First()
	if container.Length() == 0 {
		return "", errs.New(errs.ErrorTypeParsing, "detail page has no posted date")
	}

	raw := clean(container.Text())
	if strings.HasSuffix(raw, "ago") {
		raw = clean(container.AttrOr("title", ""))
	}
	if raw == "" {
		return "", errs.New(errs.ErrorTypeParsing, "detail page posted date is empty")
	}
	return raw, nil
}

// absoluteURL upgrades the site's protocol-relative file URLs
func absoluteURL(href string) string {
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}
