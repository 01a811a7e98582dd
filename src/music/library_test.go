package music

import (
	"path/filepath"
	"testing"
)

func testTrack(root string, dirs []string, name string, tags Tags) Track {
	parts := append([]string{root}, dirs...)
	parts = append(parts, name)
	return Track{
		Path:     filepath.Join(parts...),
		FileName: name,
		Size:     1024,
		Duration: 180,
		Format:   "mp3",
		Tags:     tags,
	}
}

func TestStem(t *testing.T) {
	tr := Track{FileName: "Artist - Title.mp3"}
	if got := tr.Stem(); got != "Artist - Title" {
		t.Errorf("expected stem %q, got %q", "Artist - Title", got)
	}
}

func TestDirsAndDepth(t *testing.T) {
	root := filepath.Join("/", "music")
	lib := &Library{Root: root}

	flat := testTrack(root, nil, "a.mp3", Tags{})
	if dirs := lib.Dirs(flat); dirs != nil {
		t.Errorf("expected nil dirs for root-level track, got %v", dirs)
	}

	nested := testTrack(root, []string{"Artist", "Album"}, "a.mp3", Tags{})
	dirs := lib.Dirs(nested)
	if len(dirs) != 2 || dirs[0] != "Artist" || dirs[1] != "Album" {
		t.Errorf("expected [Artist Album], got %v", dirs)
	}
	if depth := lib.Depth(nested); depth != 2 {
		t.Errorf("expected depth 2, got %d", depth)
	}

	outside := Track{Path: filepath.Join("/", "other", "a.mp3"), FileName: "a.mp3"}
	if dirs := lib.Dirs(outside); dirs != nil {
		t.Errorf("expected nil dirs for track outside root, got %v", dirs)
	}
}

func TestTagCompleteness(t *testing.T) {
	full := Track{Tags: Tags{Title: "T", Artist: "A", Album: "B", TrackNumber: 1, Year: 2001, Genre: "Jazz"}}
	if got := full.TagCompleteness(); got != 1.0 {
		t.Errorf("expected completeness 1.0, got %f", got)
	}
	half := Track{Tags: Tags{Title: "T", Artist: "A", Album: "B"}}
	if got := half.TagCompleteness(); got != 0.5 {
		t.Errorf("expected completeness 0.5, got %f", got)
	}
	if !half.HasCompleteTags() {
		t.Error("expected title/artist/album to count as complete tags")
	}
}

func TestStats(t *testing.T) {
	root := filepath.Join("/", "music")
	lib := &Library{Root: root, Tracks: []Track{
		testTrack(root, []string{"Miles Davis", "Kind of Blue"}, "01 - So What.mp3",
			Tags{Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz"}),
		testTrack(root, []string{"Miles Davis", "Kind of Blue"}, "02 - Blue in Green.mp3",
			Tags{Title: "Blue in Green", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz"}),
		testTrack(root, nil, "untagged.mp3", Tags{}),
	}}

	stats := lib.Stats()
	if stats.TotalTracks != 3 {
		t.Fatalf("expected 3 tracks, got %d", stats.TotalTracks)
	}
	if stats.TotalSizeBytes != 3*1024 {
		t.Errorf("expected total size %d, got %d", 3*1024, stats.TotalSizeBytes)
	}
	if stats.TotalDurationSecs != 3*180 {
		t.Errorf("expected total duration %d, got %d", 3*180, stats.TotalDurationSecs)
	}
	if stats.TracksWithTags != 2 || stats.TracksWithoutTags != 1 {
		t.Errorf("expected 2 tagged / 1 untagged, got %d / %d", stats.TracksWithTags, stats.TracksWithoutTags)
	}
	if stats.UniqueArtists != 2 { // Miles Davis + Unknown Artist
		t.Errorf("expected 2 unique artists, got %d", stats.UniqueArtists)
	}
	if stats.UniqueGenres != 1 {
		t.Errorf("expected 1 unique genre, got %d", stats.UniqueGenres)
	}
	if stats.FolderCount != 2 {
		t.Errorf("expected 2 folders, got %d", stats.FolderCount)
	}
	if stats.MaxFolderDepth != 2 {
		t.Errorf("expected max depth 2, got %d", stats.MaxFolderDepth)
	}
}

func TestStatsEmptyLibrary(t *testing.T) {
	lib := &Library{Root: "/music"}
	stats := lib.Stats()
	if stats.TotalTracks != 0 || stats.TagCompleteness != 0 {
		t.Errorf("expected zeroed stats for empty library, got %+v", stats)
	}
}
