package analysis

import "testing"

func TestMatchArtistTitle(t *testing.T) {
	tests := []struct {
		stem   string
		ok     bool
		artist string
		title  string
	}{
		{"The Beatles - Hey Jude", true, "The Beatles", "Hey Jude"},
		{"AC/DC - Back in Black", true, "AC/DC", "Back in Black"},
		{"Artist - Title - Live", true, "Artist", "Title - Live"},
		{"01 - 02", false, "", ""},
		{"01 - Hey Jude", false, "", ""},
		{"Hey Jude", false, "", ""},
		{" - Title", false, "", ""},
		{"Artist - ", false, "", ""},
		{"Artist-Title", false, "", ""},
	}
	for _, tt := range tests {
		fields, ok := matchArtistTitle(tt.stem)
		if ok != tt.ok {
			t.Errorf("matchArtistTitle(%q) ok = %v, want %v", tt.stem, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if fields.Artist != tt.artist || fields.Title != tt.title {
			t.Errorf("matchArtistTitle(%q) = %+v, want artist %q title %q", tt.stem, fields, tt.artist, tt.title)
		}
	}
}

func TestMatchArtistAlbumTitle(t *testing.T) {
	tests := []struct {
		stem   string
		ok     bool
		artist string
		album  string
		title  string
	}{
		{"Miles Davis - Kind of Blue - So What", true, "Miles Davis", "Kind of Blue", "So What"},
		{"A - B - C - D", true, "A", "B", "C - D"},
		{"Artist - Title", false, "", "", ""},
		{"01 - Album - Title", false, "", "", ""},
		{"Artist - 1999 - Title", false, "", "", ""},
		{"Artist -  - Title", false, "", "", ""},
		{"Hey Jude", false, "", "", ""},
	}
	for _, tt := range tests {
		fields, ok := matchArtistAlbumTitle(tt.stem)
		if ok != tt.ok {
			t.Errorf("matchArtistAlbumTitle(%q) ok = %v, want %v", tt.stem, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if fields.Artist != tt.artist || fields.Album != tt.album || fields.Title != tt.title {
			t.Errorf("matchArtistAlbumTitle(%q) = %+v, want artist %q album %q title %q",
				tt.stem, fields, tt.artist, tt.album, tt.title)
		}
	}
}

func TestMatchNumberedPrefix(t *testing.T) {
	tests := []struct {
		stem   string
		ok     bool
		number int
		artist string
		title  string
	}{
		{"01 - Hey Jude", true, 1, "", "Hey Jude"},
		{"1. Hey Jude", true, 1, "", "Hey Jude"},
		{"007_Hey Jude", true, 7, "", "Hey Jude"},
		{"12 The Beatles - Hey Jude", true, 12, "The Beatles", "Hey Jude"},
		{"101 - Track", true, 101, "", "Track"},
		{"01 - 02", true, 1, "", "02"},
		{"1234 - Too Long", false, 0, "", ""},
		{"Hey Jude", false, 0, "", ""},
		{"01", false, 0, "", ""},
	}
	for _, tt := range tests {
		fields, ok := matchNumberedPrefix(tt.stem)
		if ok != tt.ok {
			t.Errorf("matchNumberedPrefix(%q) ok = %v, want %v", tt.stem, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if fields.TrackNumber != tt.number || fields.Artist != tt.artist || fields.Title != tt.title {
			t.Errorf("matchNumberedPrefix(%q) = %+v, want number %d artist %q title %q",
				tt.stem, fields, tt.number, tt.artist, tt.title)
		}
	}
}

func TestMatchUnderscore(t *testing.T) {
	tests := []struct {
		stem   string
		ok     bool
		artist string
		title  string
	}{
		{"The_Beatles_Hey_Jude", true, "The", "Beatles Hey Jude"},
		{"Beatles_Hey Jude", true, "Beatles", "Hey Jude"},
		{"Beatles - Hey_Jude", false, "", ""},
		{"01_02", false, "", ""},
		{"HeyJude", false, "", ""},
		{"_Title", false, "", ""},
	}
	for _, tt := range tests {
		fields, ok := matchUnderscore(tt.stem)
		if ok != tt.ok {
			t.Errorf("matchUnderscore(%q) ok = %v, want %v", tt.stem, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if fields.Artist != tt.artist || fields.Title != tt.title {
			t.Errorf("matchUnderscore(%q) = %+v, want artist %q title %q", tt.stem, fields, tt.artist, tt.title)
		}
	}
}

// A numbered stem with an embedded pair satisfies both the numbered-prefix
// and the artist-title matcher; each counts it on its own.
func TestMatchersOverlapIndependently(t *testing.T) {
	stem := "01. Daft Punk - Around the World"
	if _, ok := matchArtistTitle(stem); !ok {
		t.Errorf("matchArtistTitle(%q) should match", stem)
	}
	fields, ok := matchNumberedPrefix(stem)
	if !ok {
		t.Fatalf("matchNumberedPrefix(%q) should match", stem)
	}
	if fields.TrackNumber != 1 || fields.Artist != "Daft Punk" || fields.Title != "Around the World" {
		t.Errorf("matchNumberedPrefix(%q) = %+v", stem, fields)
	}
}
