package furaffinity

import (
	"net/url"
	"path"
	"strings"
)

// Kind is the content type of a submission, taken from the t- class on
// gallery figures
type Kind string

const (
	KindImage   Kind = "image"
	KindText    Kind = "text"
	KindAudio   Kind = "audio"
	KindFlash   Kind = "flash"
	KindUnknown Kind = "unknown"
)

// ParseKind maps a figure class value onto the closed Kind set
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(s)) {
	case KindImage, KindText, KindAudio, KindFlash:
		return Kind(strings.ToLower(s))
	default:
		return KindUnknown
	}
}

// Rating is the age rating of a submission
type Rating string

const (
	RatingGeneral Rating = "general"
	RatingMature  Rating = "mature"
	RatingAdult   Rating = "adult"
	RatingUnknown Rating = "unknown"
)

// ParseRating maps a figure class value or rating box label onto the closed
// Rating set
func ParseRating(s string) Rating {
	switch Rating(strings.ToLower(strings.TrimSpace(s))) {
	case RatingGeneral, RatingMature, RatingAdult:
		return Rating(strings.ToLower(strings.TrimSpace(s)))
	default:
		return RatingUnknown
	}
}

// SearchResult is a lightweight record from a result listing page. It holds
// just enough to request the full submission.
type SearchResult struct {
	ID       int64
	Kind     Kind
	Rating   Rating
	Title    string
	Uploader string
}

// File points at a submission's downloadable file or thumbnail
type File struct {
	URL string
}

// Filename returns the file name portion of the URL
func (f File) Filename() string {
	u, err := url.Parse(f.URL)
	if err != nil {
		return path.Base(f.URL)
	}
	return path.Base(u.Path)
}

// Ext returns the file extension without the leading dot
func (f File) Ext() string {
	ext := path.Ext(f.Filename())
	return strings.TrimPrefix(ext, ".")
}

// clean collapses runs of whitespace into single spaces and trims the ends
func clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
