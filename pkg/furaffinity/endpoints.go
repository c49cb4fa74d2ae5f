package furaffinity

import (
	"fmt"
	"strings"
)

// Site paths. All are relative to the configured base URL.
const (
	searchPath    = "/search/"
	frontPagePath = "/"
	queuePath     = "/msg/submissions/old/"
	nukePath      = "/msg/submissions/"
)

// Section is a per-user listing of submissions
type Section string

const (
	SectionGallery   Section = "gallery"
	SectionScraps    Section = "scraps"
	SectionFavorites Section = "favorites"
)

// viewPath returns the detail page path for a submission
func viewPath(id int64) string {
	return fmt.Sprintf("/view/%d/", id)
}

// sectionPath returns a page of a user's gallery, scraps or favorites.
// Usernames are lowercased the way the site canonicalizes them.
func sectionPath(section Section, username string, page int) string {
	return fmt.Sprintf("/%s/%s/%d", section, strings.ToLower(username), page)
}

// buddylistPath returns a page of the logged-in user's watchlist
func buddylistPath(page int) string {
	return fmt.Sprintf("/controls/buddylist/%d", page)
}
