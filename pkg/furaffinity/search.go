package furaffinity

import (
	"context"
	"strconv"
	"strings"
)

// SearchOptions control the extended search form. Zero values take the
// site's defaults: relevancy order, descending, all time, every rating, and
// the art and photo types.
type SearchOptions struct {
	// Sort criteria: relevancy, date or popularity
	Sort string
	// Order direction: asc or desc
	Order string
	// Range limits results to a time window: day, 3days, week, month, all
	Range string
	// Page is the first result page to fetch (1-based)
	Page int
	// MaxPages bounds how many pages the pager will walk; 0 walks until
	// the site runs out of results
	MaxPages int

	Ratings RatingFilter
	Types   TypeFilter
}

// RatingFilter selects which age ratings to include. The zero value means
// all ratings.
type RatingFilter struct {
	General bool
	Mature  bool
	Adult   bool
}

// TypeFilter selects which submission types to include. The zero value
// means art and photo.
type TypeFilter struct {
	Art    bool
	Flash  bool
	Photo  bool
	Music  bool
	Story  bool
	Poetry bool
}

func (o SearchOptions) normalized() SearchOptions {
	if o.Sort == "" {
		o.Sort = "relevancy"
	}
	if o.Order == "" {
		o.Order = "desc"
	}
	if o.Range == "" {
		o.Range = "all"
	}
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.Ratings == (RatingFilter{}) {
		o.Ratings = RatingFilter{General: true, Mature: true, Adult: true}
	}
	if o.Types == (TypeFilter{}) {
		o.Types = TypeFilter{Art: true, Photo: true}
	}
	return o
}

// form builds the extended search form for one page
func (o SearchOptions) form(query string, page int) map[string]string {
	form := map[string]string{
		"q":               query,
		"page":            strconv.Itoa(page),
		"perpage":         "72",
		"order-by":        o.Sort,
		"order-direction": o.Order,
		"range":           o.Range,
		"do_search":       "Search",
		"mode":            "extended",
	}

	toggles := map[string]bool{
		"rating-general": o.Ratings.General,
		"rating-mature":  o.Ratings.Mature,
		"rating-adult":   o.Ratings.Adult,
		"type-art":       o.Types.Art,
		"type-flash":     o.Types.Flash,
		"type-photo":     o.Types.Photo,
		"type-music":     o.Types.Music,
		"type-story":     o.Types.Story,
		"type-poetry":    o.Types.Poetry,
	}
	for name, enabled := range toggles {
		if enabled {
			form[name] = "on"
		}
	}

	return form
}

// SearchPager lazily walks result pages. Use it like a scanner:
//
//	pager := client.Search(ctx, "wolf", furaffinity.SearchOptions{})
//	for pager.Next() {
//	    result := pager.Result()
//	    ...
//	}
//	if err := pager.Err(); err != nil {
//	    ...
//	}
//
// Ordering follows the site's native relevance ordering and is not
// independently guaranteed.
type SearchPager struct {
	client *Client
	ctx    context.Context
	query  string
	opts   SearchOptions

	page    int
	fetched int
	buf     []SearchResult
	idx     int
	done    bool
	err     error
}

// Search issues a tag or free-text search and returns a lazy pager over the
// results. Requires a logged-in session; the failure surfaces from the
// pager's Err.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) *SearchPager {
	opts = opts.normalized()
	return &SearchPager{
		client: c,
		ctx:    ctx,
		query:  query,
		opts:   opts,
		page:   opts.Page,
		idx:    -1,
	}
}

// SearchTags searches for submissions labeled with all of the given tags.
// Options apply the same way they do for a free-text Search.
func (c *Client) SearchTags(ctx context.Context, opts SearchOptions, tags ...string) *SearchPager {
	return c.Search(ctx, "@keywords "+strings.Join(tags, " "), opts)
}

// Next advances the pager to the next result, fetching further pages as
// needed. It returns false at exhaustion or on error; check Err afterwards.
func (p *SearchPager) Next() bool {
	if p.err != nil {
		return false
	}

	p.idx++
	if p.idx < len(p.buf) {
		return true
	}
	if p.done {
		return false
	}
	if p.opts.MaxPages > 0 && p.fetched >= p.opts.MaxPages {
		return false
	}

	results, err := p.client.searchPage(p.ctx, p.query, p.opts, p.page)
	if err != nil {
		p.err = err
		return false
	}
	p.page++
	p.fetched++

	if len(results) == 0 {
		p.done = true
		return false
	}

	p.buf = results
	p.idx = 0
	return true
}

// Result returns the current result. Only valid after Next returned true.
func (p *SearchPager) Result() SearchResult {
	return p.buf[p.idx]
}

// Err returns the first error the pager hit, if any
func (p *SearchPager) Err() error {
	return p.err
}

// All drains the pager into a slice
func (p *SearchPager) All() ([]SearchResult, error) {
	var results []SearchResult
	for p.Next() {
		results = append(results, p.Result())
	}
	return results, p.Err()
}

// searchPage fetches and parses a single page of search results
func (c *Client) searchPage(ctx context.Context, query string, opts SearchOptions, page int) ([]SearchResult, error) {
	if err := c.requireLogin(); err != nil {
		return nil, err
	}

	doc, err := c.postDoc(ctx, searchPath, opts.form(query, page))
	if err != nil {
		return nil, err
	}

	container := doc.Find("#gallery-search-results")
	if container.Length() == 0 {
		return nil, errParseContainer("search results")
	}

	results, err := parseFigures(container)
	if err != nil {
		return nil, err
	}

	c.logger.DebugWithFields("parsed search page", map[string]interface{}{
		"query":   query,
		"page":    page,
		"results": len(results),
	})

	return results, nil
}
