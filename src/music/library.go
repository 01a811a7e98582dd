package music

import (
	"path/filepath"
	"strings"
)

// Library is the full set of tracks from one scan plus the root they were
// scanned under. It is read-only for the lifetime of an analysis run;
// aggregate statistics are always computed from the current track set.
type Library struct {
	Root   string
	Tracks []Track
}

// LibraryStats holds aggregate statistics about a scanned library.
type LibraryStats struct {
	TotalTracks       int
	TotalSizeBytes    int64
	TotalDurationSecs int
	TracksWithTags    int
	TracksWithoutTags int
	TagCompleteness   float64
	UniqueArtists     int
	UniqueAlbums      int
	UniqueGenres      int
	FolderCount       int
	MaxFolderDepth    int
}

// Dirs returns the directory names between the library root and the track's
// file, outermost first. A track directly under the root yields nil, as does
// a track outside the root.
func (l *Library) Dirs(t Track) []string {
	rel, err := filepath.Rel(l.Root, filepath.Dir(t.Path))
	if err != nil || rel == "." {
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return strings.Split(rel, string(filepath.Separator))
}

// Depth returns the folder depth of a track below the root.
func (l *Library) Depth(t Track) int {
	return len(l.Dirs(t))
}

// Folders groups tracks by their containing directory, keyed by the path
// relative to the root ("." for the root itself).
func (l *Library) Folders() map[string][]Track {
	folders := make(map[string][]Track)
	for _, t := range l.Tracks {
		key := "."
		if dirs := l.Dirs(t); len(dirs) > 0 {
			key = strings.Join(dirs, "/")
		}
		folders[key] = append(folders[key], t)
	}
	return folders
}

// Stats computes aggregate statistics over the current track set.
func (l *Library) Stats() LibraryStats {
	stats := LibraryStats{TotalTracks: len(l.Tracks)}
	if len(l.Tracks) == 0 {
		return stats
	}

	artists := make(map[string]struct{})
	albums := make(map[string]struct{})
	genres := make(map[string]struct{})
	completeness := 0.0

	for _, t := range l.Tracks {
		stats.TotalSizeBytes += t.Size
		stats.TotalDurationSecs += t.Duration
		completeness += t.TagCompleteness()
		if t.HasCompleteTags() {
			stats.TracksWithTags++
		}
		artists[t.DisplayArtist()] = struct{}{}
		albums[t.DisplayArtist()+"|"+t.Tags.Album] = struct{}{}
		if t.Tags.Genre != "" {
			genres[t.Tags.Genre] = struct{}{}
		}
		if depth := l.Depth(t); depth > stats.MaxFolderDepth {
			stats.MaxFolderDepth = depth
		}
	}

	stats.TracksWithoutTags = stats.TotalTracks - stats.TracksWithTags
	stats.TagCompleteness = completeness / float64(stats.TotalTracks)
	stats.UniqueArtists = len(artists)
	stats.UniqueAlbums = len(albums)
	stats.UniqueGenres = len(genres)
	stats.FolderCount = len(l.Folders())
	return stats
}
