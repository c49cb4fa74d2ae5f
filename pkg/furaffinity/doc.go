// Package furaffinity is a client for browsing the FurAffinity gallery site
// through its HTML pages.
//
// A Client wraps one authenticated session. Authentication works by cookie
// injection: the caller supplies the two session cookies the site issued at
// login, and the client verifies them against the front page.
//
//	client, err := furaffinity.New(cfg, nil)
//	if err != nil { ... }
//	err = client.Login(ctx, &auth.Cookies{A: "...", B: "..."})
//
// Searches return a lazy pager that walks result pages on demand:
//
//	pager := client.SearchTags(ctx, furaffinity.SearchOptions{}, "wolf", "forest")
//	for pager.Next() {
//	    sub, err := client.Submission(ctx, pager.Result().ID)
//	    ...
//	}
//
// All scraping lives in this package's parse layer; when the site markup
// drifts, operations fail with a parsing error rather than returning
// silently empty data.
package furaffinity
