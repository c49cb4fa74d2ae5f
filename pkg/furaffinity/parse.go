package furaffinity

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	errs "fascraper/pkg/errors"
)

// figureClassRegex pulls the rating and kind out of a gallery figure's
// class attribute, e.g. "r-general t-image"
var figureClassRegex = regexp.MustCompile(`r-([a-z]+) t-([a-z]+)`)

// ordinalRegex strips the st/nd/rd/th suffix from day numbers in posted
// dates, e.g. "Oct 21st, 2016"
var ordinalRegex = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

// postedTimeLayout matches the site's full date format after ordinal
// stripping, e.g. "Oct 21, 2016 03:44 AM"
const postedTimeLayout = "Jan 2, 2006 03:04 PM"

// errParseContainer reports a listing page whose expected container element
// is missing, which means the site markup changed rather than that there
// are no results
func errParseContainer(what string) error {
	return errs.Newf(errs.ErrorTypeParsing, "page markup has no %s container; the site layout may have changed", what)
}

// parseFigures extracts search results from the gallery figures inside a
// listing container. A figure that does not carry the expected id and class
// attributes is a parsing error, never a silent skip.
func parseFigures(container *goquery.Selection) ([]SearchResult, error) {
	var results []SearchResult
	var parseErr error

	container.Find("figure").EachWithBreak(func(_ int, fig *goquery.Selection) bool {
		result, err := parseFigure(fig)
		if err != nil {
			parseErr = err
			return false
		}
		results = append(results, result)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return results, nil
}

func parseFigure(fig *goquery.Selection) (SearchResult, error) {
	idAttr, ok := fig.Attr("id")
	if !ok || !strings.HasPrefix(idAttr, "sid-") {
		return SearchResult{}, errs.New(errs.ErrorTypeParsing, "gallery figure is missing its sid- id attribute")
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(idAttr, "sid-"), 10, 64)
	if err != nil {
		return SearchResult{}, errs.Newf(errs.ErrorTypeParsing, "gallery figure has malformed id %q", idAttr)
	}

	class := fig.AttrOr("class", "")
	groups := figureClassRegex.FindStringSubmatch(class)
	if groups == nil {
		return SearchResult{}, errs.Newf(errs.ErrorTypeParsing, "gallery figure %d has no rating/kind classes", id)
	}

	result := SearchResult{
		ID:     id,
		Rating: ParseRating(groups[1]),
		Kind:   ParseKind(groups[2]),
	}

	// The caption holds the title anchor and the uploader anchor, in that
	// order. Old-style listings without captions still parse.
	anchors := fig.Find("figcaption a")
	if anchors.Length() >= 1 {
		result.Title = clean(anchors.First().Text())
	}
	if anchors.Length() >= 2 {
		result.Uploader = clean(anchors.Eq(1).Text())
	}

	return result, nil
}

// textAfterLabel returns the cleaned text node immediately following a
// <strong> label such as "Species:". The detail page lays metadata out as
// label/value pairs of exactly that shape.
func textAfterLabel(doc *goquery.Document, label string) string {
	var value string
	doc.Find("strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if clean(s.Text()) != label {
			return true
		}
		node := s.Get(0)
		if node.NextSibling != nil && node.NextSibling.Type == html.TextNode {
			value = clean(node.NextSibling.Data)
		}
		return false
	})
	return value
}

// statAfterHeading returns the integer inside the first span following an
// <h3> stats heading ("Favs", "Comments", "Views")
func statAfterHeading(doc *goquery.Document, heading string) (int, bool) {
	var text string
	doc.Find("h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if clean(s.Text()) != heading {
			return true
		}
		text = clean(s.NextAllFiltered("span").First().Text())
		return false
	})

	if text == "" {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parsePostedTime parses the site's human-readable timestamp. The raw value
// keeps the ordinal day suffix; it is stripped before parsing.
func parsePostedTime(raw string) (time.Time, error) {
	normalized := ordinalRegex.ReplaceAllString(clean(raw), "$1")
	t, err := time.Parse(postedTimeLayout, normalized)
	if err != nil {
		return time.Time{}, errs.Newf(errs.ErrorTypeParsing, "unrecognized posted date %q", raw)
	}
	return t, nil
}
