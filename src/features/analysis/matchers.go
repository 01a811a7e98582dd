package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Fields holds whatever a filename matcher could extract from a stem.
type Fields struct {
	Artist      string
	Album       string
	Title       string
	TrackNumber int
}

// FilenameMatcher tests one filename convention against a filename stem.
// Match must be a pure function: no I/O, no shared state, deterministic.
type FilenameMatcher struct {
	ID          string
	Description string
	Priority    int
	Match       func(stem string) (Fields, bool)
}

// FilenameMatchers lists every filename convention the engine knows, in
// tie-break priority order. A track may satisfy more than one matcher; each
// matcher counts it independently and ranking resolves precedence.
func FilenameMatchers() []FilenameMatcher {
	return []FilenameMatcher{
		{ID: "artist-title", Description: "Artist - Title", Priority: 0, Match: matchArtistTitle},
		{ID: "artist-album-title", Description: "Artist - Album - Title", Priority: 1, Match: matchArtistAlbumTitle},
		{ID: "numbered-prefix", Description: "## - Artist - Title / ##. Title", Priority: 2, Match: matchNumberedPrefix},
		{ID: "artist-title-underscore", Description: "Artist_Title", Priority: 3, Match: matchUnderscore},
	}
}

var numberedPrefixRe = regexp.MustCompile(`^(\d{1,3})\s*[-._\s]\s*(.+)$`)

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// matchArtistTitle splits on the first literal " - " separator. Sides that
// trim to nothing or consist only of digits reject the split, so a stem like
// "01 - 02" stays with the numbered-prefix matcher.
func matchArtistTitle(stem string) (Fields, bool) {
	idx := strings.Index(stem, " - ")
	if idx < 0 {
		return Fields{}, false
	}
	artist := strings.TrimSpace(stem[:idx])
	title := strings.TrimSpace(stem[idx+3:])
	if artist == "" || title == "" {
		return Fields{}, false
	}
	if allDigits(artist) || allDigits(title) {
		return Fields{}, false
	}
	return Fields{Artist: artist, Title: title}, true
}

// matchArtistAlbumTitle splits on the first two " - " separators. All three
// parts must trim to something, and digit-only parts reject the split so
// numbered stems stay with the numbered-prefix matcher.
func matchArtistAlbumTitle(stem string) (Fields, bool) {
	first := strings.Index(stem, " - ")
	if first < 0 {
		return Fields{}, false
	}
	rest := stem[first+3:]
	second := strings.Index(rest, " - ")
	if second < 0 {
		return Fields{}, false
	}
	artist := strings.TrimSpace(stem[:first])
	album := strings.TrimSpace(rest[:second])
	title := strings.TrimSpace(rest[second+3:])
	if artist == "" || album == "" || title == "" {
		return Fields{}, false
	}
	if allDigits(artist) || allDigits(album) || allDigits(title) {
		return Fields{}, false
	}
	return Fields{Artist: artist, Album: album, Title: title}, true
}

// matchNumberedPrefix recognizes a leading 1-3 digit track number (zero
// padding allowed) followed by a ".", "-", "_" or whitespace separator. The
// remainder may itself be an "Artist - Title" pair.
func matchNumberedPrefix(stem string) (Fields, bool) {
	m := numberedPrefixRe.FindStringSubmatch(stem)
	if m == nil {
		return Fields{}, false
	}
	number, err := strconv.Atoi(m[1])
	if err != nil {
		return Fields{}, false
	}
	rest := strings.TrimSpace(m[2])
	if rest == "" {
		return Fields{}, false
	}
	fields := Fields{TrackNumber: number}
	if idx := strings.Index(rest, " - "); idx >= 0 {
		artist := strings.TrimSpace(rest[:idx])
		title := strings.TrimSpace(rest[idx+3:])
		if artist != "" && title != "" {
			fields.Artist = artist
			fields.Title = title
			return fields, true
		}
	}
	fields.Title = rest
	return fields, true
}

// matchUnderscore is the fallback for libraries that separate artist and
// title with underscores instead of " - ". The same digit-only rejection as
// matchArtistTitle applies, keeping numbered stems like "01_02" with the
// numbered-prefix matcher.
func matchUnderscore(stem string) (Fields, bool) {
	if strings.Contains(stem, " - ") {
		return Fields{}, false
	}
	idx := strings.Index(stem, "_")
	if idx < 0 {
		return Fields{}, false
	}
	artist := strings.TrimSpace(stem[:idx])
	title := strings.TrimSpace(strings.ReplaceAll(stem[idx+1:], "_", " "))
	if artist == "" || title == "" {
		return Fields{}, false
	}
	if allDigits(artist) || allDigits(title) {
		return Fields{}, false
	}
	return Fields{Artist: artist, Title: title}, true
}
