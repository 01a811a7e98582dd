package analysis

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tunesleuth/src/music"
)

func libTrack(root, rel string) music.Track {
	path := filepath.Join(root, filepath.FromSlash(rel))
	return music.Track{Path: path, FileName: filepath.Base(path), Format: "mp3"}
}

// mixedLibrary holds 847 "Artist - Title" stems and 400 tagless dump names,
// all in a single flat folder.
func mixedLibrary() *music.Library {
	lib := &music.Library{Root: filepath.FromSlash("/music")}
	for i := 0; i < 847; i++ {
		lib.Tracks = append(lib.Tracks, libTrack(lib.Root, fmt.Sprintf("Artist %d - Title %d.mp3", i, i)))
	}
	for i := 0; i < 400; i++ {
		lib.Tracks = append(lib.Tracks, libTrack(lib.Root, fmt.Sprintf("song%04d.mp3", i)))
	}
	return lib
}

// nestedLibrary holds 1189 tracks under Artist/Album folders (45 artists,
// 127 albums) plus 65 stragglers one level deep.
func nestedLibrary() *music.Library {
	lib := &music.Library{Root: filepath.FromSlash("/music")}
	for i := 0; i < 1189; i++ {
		album := i % 127
		artist := album % 45
		rel := fmt.Sprintf("Artist %02d/Album %03d/Track %d.mp3", artist, album, i)
		lib.Tracks = append(lib.Tracks, libTrack(lib.Root, rel))
	}
	for i := 0; i < 65; i++ {
		lib.Tracks = append(lib.Tracks, libTrack(lib.Root, fmt.Sprintf("Loose %d/file %d.mp3", i, i)))
	}
	return lib
}

func TestAnalyzeMixedFilenames(t *testing.T) {
	report, err := NewDetector().Analyze(mixedLibrary(), Options{Explain: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.FilenamePatterns) != 1 {
		t.Fatalf("got %d filename patterns, want 1: %+v", len(report.FilenamePatterns), report.FilenamePatterns)
	}
	m := report.FilenamePatterns[0]
	if m.ID != "artist-title" {
		t.Errorf("pattern ID = %q, want artist-title", m.ID)
	}
	if m.Matched != 847 || m.Considered != 1247 {
		t.Errorf("counts = %d/%d, want 847/1247", m.Matched, m.Considered)
	}
	if m.Band != music.BandHigh {
		t.Errorf("band = %v, want %v", m.Band, music.BandHigh)
	}
	if m.Percent() != 68 {
		t.Errorf("percent = %d, want 68", m.Percent())
	}
	if !strings.Contains(m.Explanation, "847 of 1247 files (68%)") {
		t.Errorf("explanation %q should carry the exact counts", m.Explanation)
	}
	if len(m.Examples) != 3 {
		t.Errorf("got %d examples, want 3", len(m.Examples))
	}
	if report.Summary.PrimaryFilename == nil || report.Summary.PrimaryFilename.ID != "artist-title" {
		t.Errorf("primary filename = %+v, want artist-title", report.Summary.PrimaryFilename)
	}
}

func TestAnalyzeNestedFolders(t *testing.T) {
	report, err := NewDetector().Analyze(nestedLibrary(), Options{Explain: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.FolderPatterns) != 1 {
		t.Fatalf("got %d folder patterns, want 1: %+v", len(report.FolderPatterns), report.FolderPatterns)
	}
	m := report.FolderPatterns[0]
	if m.ID != "artist-album-folder" {
		t.Errorf("pattern ID = %q, want artist-album-folder", m.ID)
	}
	if m.Matched != 1189 || m.Considered != 1254 {
		t.Errorf("counts = %d/%d, want 1189/1254", m.Matched, m.Considered)
	}
	if m.Band != music.BandVeryHigh {
		t.Errorf("band = %v, want %v", m.Band, music.BandVeryHigh)
	}
	if !strings.Contains(m.Explanation, "45 artist folders contain 127 distinct album folders") {
		t.Errorf("explanation %q should carry the folder detail", m.Explanation)
	}
	if report.Summary.PrimaryFolder == nil || report.Summary.PrimaryFolder.ID != "artist-album-folder" {
		t.Errorf("primary folder = %+v, want artist-album-folder", report.Summary.PrimaryFolder)
	}
}

func TestAnalyzeIncludeLowConfidence(t *testing.T) {
	lib := nestedLibrary()

	report, err := NewDetector().Analyze(lib, Options{IncludeLowConfidence: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.FolderPatterns) != 2 {
		t.Fatalf("got %d folder patterns, want 2: %+v", len(report.FolderPatterns), report.FolderPatterns)
	}
	if report.FolderPatterns[1].ID != "artist-folder" || report.FolderPatterns[1].Band != music.BandLow {
		t.Errorf("second pattern = %+v, want Low artist-folder", report.FolderPatterns[1])
	}
}

func TestAnalyzeEmptyLibrary(t *testing.T) {
	for _, lib := range []*music.Library{nil, {Root: "/music"}} {
		report, err := NewDetector().Analyze(lib, Options{Explain: true})
		if err != nil {
			t.Fatalf("Analyze(%+v): %v", lib, err)
		}
		if len(report.FilenamePatterns) != 0 || len(report.FolderPatterns) != 0 {
			t.Errorf("empty library produced patterns: %+v", report)
		}
		if report.Summary.PrimaryFilename != nil || report.Summary.PrimaryFolder != nil {
			t.Errorf("empty library produced a primary: %+v", report.Summary)
		}
	}
}

// Three-part stems satisfy both the pair matcher (greedy title) and the
// Artist - Album - Title matcher; both count independently and the tie is
// broken by declared priority.
func TestAnalyzeThreePartStems(t *testing.T) {
	lib := &music.Library{Root: filepath.FromSlash("/music")}
	for i := 0; i < 20; i++ {
		lib.Tracks = append(lib.Tracks, libTrack(lib.Root, fmt.Sprintf("Artist %d - Album %d - Title %d.mp3", i, i, i)))
	}

	report, err := NewDetector().Analyze(lib, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.FilenamePatterns) != 2 {
		t.Fatalf("got %d filename patterns, want 2: %+v", len(report.FilenamePatterns), report.FilenamePatterns)
	}
	if report.FilenamePatterns[0].ID != "artist-title" || report.FilenamePatterns[1].ID != "artist-album-title" {
		t.Errorf("ranking = [%s %s], want [artist-title artist-album-title]",
			report.FilenamePatterns[0].ID, report.FilenamePatterns[1].ID)
	}
	aat := report.FilenamePatterns[1]
	if aat.Matched != 20 || aat.Band != music.BandVeryHigh {
		t.Errorf("artist-album-title = %+v, want 20 matches at Very High", aat)
	}
}

// Digit-only stems like "01 - 02" must land with the numbered-prefix matcher
// and never be read as artist and title.
func TestAnalyzeNumberedStems(t *testing.T) {
	lib := &music.Library{Root: filepath.FromSlash("/music")}
	for i := 1; i <= 10; i++ {
		lib.Tracks = append(lib.Tracks, libTrack(lib.Root, fmt.Sprintf("%02d - %02d.mp3", i, i+1)))
	}
	report, err := NewDetector().Analyze(lib, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.FilenamePatterns) != 1 || report.FilenamePatterns[0].ID != "numbered-prefix" {
		t.Fatalf("patterns = %+v, want only numbered-prefix", report.FilenamePatterns)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	lib := mixedLibrary()
	lib.Tracks = append(lib.Tracks, nestedLibrary().Tracks...)

	d := NewDetector()
	opts := Options{Explain: true, IncludeLowConfidence: true}
	first, err := d.Analyze(lib, opts)
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	second, err := d.Analyze(lib, opts)
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same library disagree")
	}
}

func TestAnalyzeNoPrimaryBelowMedium(t *testing.T) {
	lib := &music.Library{Root: filepath.FromSlash("/music")}
	lib.Tracks = append(lib.Tracks, libTrack(lib.Root, "Artist - Title.mp3"))
	for i := 0; i < 9; i++ {
		lib.Tracks = append(lib.Tracks, libTrack(lib.Root, fmt.Sprintf("noise%d.mp3", i)))
	}

	report, err := NewDetector().Analyze(lib, Options{IncludeLowConfidence: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.FilenamePatterns) != 1 {
		t.Fatalf("patterns = %+v, want the single Low match", report.FilenamePatterns)
	}
	if report.Summary.PrimaryFilename != nil {
		t.Errorf("a Low-band match must not become the primary: %+v", report.Summary.PrimaryFilename)
	}
}

func TestAnalyzeInvariantViolation(t *testing.T) {
	d := NewDetector()
	d.folder = []FolderMatcher{{
		ID:          "broken",
		Description: "Broken",
		Match: func(lib *music.Library) FolderMatch {
			return FolderMatch{Matched: len(lib.Tracks) + 1, Considered: len(lib.Tracks)}
		},
	}}

	lib := &music.Library{Root: "/music", Tracks: []music.Track{libTrack("/music", "a.mp3")}}
	_, err := d.Analyze(lib, Options{})
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
}

func TestAnalyzeSurvivesMatcherPanic(t *testing.T) {
	d := NewDetector()
	d.filename = []FilenameMatcher{
		{ID: "panicky", Description: "Panicky", Priority: 0, Match: func(string) (Fields, bool) { panic("boom") }},
		{ID: "artist-title", Description: "Artist - Title", Priority: 1, Match: matchArtistTitle},
	}
	d.folder = []FolderMatcher{{
		ID:          "panicky-folder",
		Description: "Panicky",
		Match:       func(*music.Library) FolderMatch { panic("boom") },
	}}

	lib := &music.Library{Root: "/music", Tracks: []music.Track{libTrack("/music", "A - B.mp3")}}
	report, err := d.Analyze(lib, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.FilenamePatterns) != 1 || report.FilenamePatterns[0].ID != "artist-title" {
		t.Fatalf("patterns = %+v, want the surviving artist-title match", report.FilenamePatterns)
	}
	if len(report.FolderPatterns) != 0 {
		t.Errorf("a panicking folder matcher must contribute nothing, got %+v", report.FolderPatterns)
	}
}

func TestSelectExamplesDedupesTransliterated(t *testing.T) {
	got := selectExamples([]string{
		"Café - Song.mp3",
		"Cafe - Song.mp3",
		"B - C.mp3",
		"D - E.mp3",
		"F - G.mp3",
	})
	want := []string{"Café - Song.mp3", "B - C.mp3", "D - E.mp3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selectExamples = %v, want %v", got, want)
	}
}
