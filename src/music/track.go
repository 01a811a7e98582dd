package music

import (
	"path/filepath"
	"strings"
)

// Track represents a single scanned audio file. It is a value object built
// by the scanner; the analysis engine never mutates it.
type Track struct {
	Path     string
	FileName string
	Size     int64
	Duration int // seconds, 0 when probing failed
	Format   string
	Tags     Tags
}

// Tags holds the tag fields extracted from a file. Zero values mean the
// field was absent or unreadable.
type Tags struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string
	Year        int
	TrackNumber int
	DiscNumber  int
}

// Stem returns the filename without its extension.
func (t Track) Stem() string {
	return strings.TrimSuffix(t.FileName, filepath.Ext(t.FileName))
}

// HasCompleteTags reports whether title, artist and album are all present.
func (t Track) HasCompleteTags() bool {
	return t.Tags.Title != "" && t.Tags.Artist != "" && t.Tags.Album != ""
}

// TagCompleteness scores how many of the common tag fields are filled, from
// 0 to 1.
func (t Track) TagCompleteness() float64 {
	fields := []bool{
		t.Tags.Title != "",
		t.Tags.Artist != "",
		t.Tags.Album != "",
		t.Tags.TrackNumber != 0,
		t.Tags.Year != 0,
		t.Tags.Genre != "",
	}
	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	return float64(filled) / float64(len(fields))
}

// DisplayArtist returns the tagged artist or a fallback for display.
func (t Track) DisplayArtist() string {
	if t.Tags.Artist != "" {
		return t.Tags.Artist
	}
	return "Unknown Artist"
}

// DisplayTitle returns the tagged title, falling back to the filename stem.
func (t Track) DisplayTitle() string {
	if t.Tags.Title != "" {
		return t.Tags.Title
	}
	return t.Stem()
}
