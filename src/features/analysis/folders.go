package analysis

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"tunesleuth/src/music"
)

// FolderMatch is the raw outcome of a folder-structure matcher before
// scoring: library-wide counts plus illustrative folder names.
type FolderMatch struct {
	Matched    int
	Considered int
	Examples   []string
	Detail     string // extra sentence appended to the explanation
}

// FolderMatcher inspects the directory hierarchy of the whole library. Like
// filename matchers it is pure: it only reads the library value.
type FolderMatcher struct {
	ID          string
	Description string
	Priority    int
	Match       func(lib *music.Library) FolderMatch
}

// FolderMatchers lists the folder-structure conventions in tie-break
// priority order.
func FolderMatchers() []FolderMatcher {
	return []FolderMatcher{
		{ID: "artist-album-folder", Description: "Artist / Album structure", Priority: 0, Match: matchArtistAlbumFolders},
		{ID: "flat-folder", Description: "Flat (single folder)", Priority: 1, Match: matchFlatFolders},
		{ID: "artist-folder", Description: "Artist folders only", Priority: 2, Match: matchArtistFolders},
		{ID: "artist-album-disc-folder", Description: "Artist / Album / Disc structure", Priority: 3, Match: matchDiscFolders},
		{ID: "year-in-folder", Description: "Year in folder name", Priority: 4, Match: matchYearFolders},
	}
}

var (
	discFolderRe = regexp.MustCompile(`(?i)^(?:disc|cd|disk)\s*\d+$`)
	yearFolderRe = regexp.MustCompile(`[(\[]\s*\d{4}\s*[)\]]`)
)

// matchArtistAlbumFolders counts tracks nested exactly two levels below the
// root, grouping first-level directories as artists and second-level ones
// as albums.
func matchArtistAlbumFolders(lib *music.Library) FolderMatch {
	fm := FolderMatch{Considered: len(lib.Tracks)}
	artists := make(map[string]struct{})
	albums := make(map[string]struct{})
	for _, t := range lib.Tracks {
		dirs := lib.Dirs(t)
		if len(dirs) != 2 {
			continue
		}
		fm.Matched++
		artists[dirs[0]] = struct{}{}
		albums[dirs[0]+"/"+dirs[1]] = struct{}{}
		fm.Examples = append(fm.Examples, dirs[0]+"/"+dirs[1])
	}
	if fm.Matched > 0 {
		fm.Detail = fmt.Sprintf("%d artist folders contain %d distinct album folders.", len(artists), len(albums))
	}
	return fm
}

// matchFlatFolders counts tracks sitting directly in the scanned root.
func matchFlatFolders(lib *music.Library) FolderMatch {
	fm := FolderMatch{Considered: len(lib.Tracks)}
	for _, t := range lib.Tracks {
		if lib.Depth(t) != 0 {
			continue
		}
		fm.Matched++
	}
	if fm.Matched > 0 {
		fm.Examples = []string{filepath.Base(lib.Root)}
		fm.Detail = "Matched tracks sit directly in the scanned root."
	}
	return fm
}

// matchArtistFolders counts tracks exactly one level below the root.
func matchArtistFolders(lib *music.Library) FolderMatch {
	fm := FolderMatch{Considered: len(lib.Tracks)}
	folders := make(map[string]struct{})
	for _, t := range lib.Tracks {
		dirs := lib.Dirs(t)
		if len(dirs) != 1 {
			continue
		}
		fm.Matched++
		folders[dirs[0]] = struct{}{}
		fm.Examples = append(fm.Examples, dirs[0])
	}
	if fm.Matched > 0 {
		fm.Detail = fmt.Sprintf("%d folders sit directly under the root with no further nesting.", len(folders))
	}
	return fm
}

// matchDiscFolders counts tracks three levels deep whose leaf directory
// looks like a disc folder ("Disc 1", "CD2", ...).
func matchDiscFolders(lib *music.Library) FolderMatch {
	fm := FolderMatch{Considered: len(lib.Tracks)}
	discs := make(map[string]struct{})
	for _, t := range lib.Tracks {
		dirs := lib.Dirs(t)
		if len(dirs) != 3 || !discFolderRe.MatchString(dirs[2]) {
			continue
		}
		fm.Matched++
		rel := strings.Join(dirs, "/")
		discs[rel] = struct{}{}
		fm.Examples = append(fm.Examples, rel)
	}
	if fm.Matched > 0 {
		fm.Detail = fmt.Sprintf("%d disc folders found below album level.", len(discs))
	}
	return fm
}

// matchYearFolders counts tracks with a bracketed four-digit year anywhere
// in their directory chain, e.g. "Album (1997)".
func matchYearFolders(lib *music.Library) FolderMatch {
	fm := FolderMatch{Considered: len(lib.Tracks)}
	folders := make(map[string]struct{})
	for _, t := range lib.Tracks {
		dirs := lib.Dirs(t)
		hit := ""
		for _, d := range dirs {
			if yearFolderRe.MatchString(d) {
				hit = d
				break
			}
		}
		if hit == "" {
			continue
		}
		fm.Matched++
		folders[hit] = struct{}{}
		fm.Examples = append(fm.Examples, hit)
	}
	if fm.Matched > 0 {
		fm.Detail = fmt.Sprintf("%d folder names include a release year.", len(folders))
	}
	return fm
}
