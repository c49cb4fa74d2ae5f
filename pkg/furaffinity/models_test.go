package furaffinity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"image", KindImage},
		{"text", KindText},
		{"audio", KindAudio},
		{"flash", KindFlash},
		{"IMAGE", KindImage},
		{"video", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseKind(tt.in), "kind %q", tt.in)
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want Rating
	}{
		{"general", RatingGeneral},
		{"General", RatingGeneral},
		{" Mature ", RatingMature},
		{"adult", RatingAdult},
		{"explicit", RatingUnknown},
		{"", RatingUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRating(tt.in), "rating %q", tt.in)
	}
}

func TestFile(t *testing.T) {
	f := File{URL: "https://d.example.test/art/fakeartist/00001.jpg"}
	assert.Equal(t, "00001.jpg", f.Filename())
	assert.Equal(t, "jpg", f.Ext())

	noExt := File{URL: "https://d.example.test/art/fakeartist/readme"}
	assert.Equal(t, "readme", noExt.Filename())
	assert.Equal(t, "", noExt.Ext())

	query := File{URL: "https://d.example.test/art/a/clip.mp3?token=abc"}
	assert.Equal(t, "clip.mp3", query.Filename())
	assert.Equal(t, "mp3", query.Ext())
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "hello world"},
		{"one\n\ttwo", "one two"},
		{"already clean", "already clean"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clean(tt.in))
	}
}
