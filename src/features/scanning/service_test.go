package scanning

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tunesleuth/src/features/config"
	"tunesleuth/src/music"
)

// MockTagReader returns canned tags per path and errors for listed paths.
type MockTagReader struct {
	tags    map[string]music.Tags
	failing map[string]bool
	calls   []string
}

func NewMockTagReader() *MockTagReader {
	return &MockTagReader{
		tags:    make(map[string]music.Tags),
		failing: make(map[string]bool),
	}
}

func (m *MockTagReader) ReadTags(ctx context.Context, path string) (music.Tags, error) {
	m.calls = append(m.calls, path)
	if m.failing[filepath.Base(path)] {
		return music.Tags{}, errors.New("corrupt header")
	}
	return m.tags[filepath.Base(path)], nil
}

// MockProber returns a fixed duration for every file.
type MockProber struct {
	duration int
}

func (m *MockProber) Duration(path string) (int, error) {
	return m.duration, nil
}

func testConfig(root string) *config.Manager {
	return config.NewManager(&config.Config{
		LibraryPath: root,
		Scan: config.Scan{
			Extensions:    []string{".mp3", ".flac"},
			ReadDurations: true,
		},
	})
}

func writeFile(t *testing.T, root string, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanFindsAudioFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Artist/Album/01 - Song.mp3")
	writeFile(t, root, "Artist/Album/02 - Other.flac")
	writeFile(t, root, "Artist/Album/cover.jpg")
	writeFile(t, root, "notes.txt")

	reader := NewMockTagReader()
	reader.tags["01 - Song.mp3"] = music.Tags{Title: "Song", Artist: "Artist"}

	service := NewService(testConfig(root), reader, &MockProber{duration: 180}, nil, nil)
	lib, report, err := service.Scan(context.Background(), nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(lib.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2: %+v", len(lib.Tracks), lib.Tracks)
	}
	if report.TracksFound != 2 || report.TagErrors != 0 {
		t.Errorf("report = %+v, want 2 tracks and no tag errors", report)
	}

	first := lib.Tracks[0]
	if first.FileName != "01 - Song.mp3" || first.Format != "mp3" {
		t.Errorf("first track = %+v", first)
	}
	if first.Tags.Title != "Song" || first.Duration != 180 {
		t.Errorf("first track metadata = %+v", first)
	}

	current, ok := service.Current()
	if !ok || len(current.Tracks) != 2 {
		t.Error("scan result should become the current catalog")
	}
}

func TestScanKeepsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.mp3")
	writeFile(t, root, "broken.mp3")

	reader := NewMockTagReader()
	reader.tags["good.mp3"] = music.Tags{Title: "Good"}
	reader.failing["broken.mp3"] = true

	service := NewService(testConfig(root), reader, &MockProber{}, nil, nil)
	lib, report, err := service.Scan(context.Background(), nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(lib.Tracks) != 2 {
		t.Fatalf("an unreadable file must stay in the catalog, got %d tracks", len(lib.Tracks))
	}
	if report.TagErrors != 1 {
		t.Errorf("report.TagErrors = %d, want 1", report.TagErrors)
	}

	var broken *music.Track
	for i := range lib.Tracks {
		if lib.Tracks[i].FileName == "broken.mp3" {
			broken = &lib.Tracks[i]
		}
	}
	if broken == nil {
		t.Fatal("broken.mp3 missing from catalog")
	}
	if broken.Tags != (music.Tags{}) {
		t.Errorf("broken track should carry empty tags, got %+v", broken.Tags)
	}
}

func TestScanSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "visible.mp3")
	writeFile(t, root, ".cache/hidden.mp3")

	service := NewService(testConfig(root), NewMockTagReader(), &MockProber{}, nil, nil)
	lib, _, err := service.Scan(context.Background(), nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(lib.Tracks) != 1 || lib.Tracks[0].FileName != "visible.mp3" {
		t.Errorf("tracks = %+v, want only visible.mp3", lib.Tracks)
	}
}

func TestScanReportsProgress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.mp3")
	writeFile(t, root, "b.mp3")

	service := NewService(testConfig(root), NewMockTagReader(), &MockProber{}, nil, nil)

	var updates []int
	_, _, err := service.Scan(context.Background(), func(done, total int, path string) {
		updates = append(updates, done*100/total)
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(updates) != 2 || updates[len(updates)-1] != 100 {
		t.Errorf("progress updates = %v, want two ending at 100", updates)
	}
}

func TestScanCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewService(testConfig(root), NewMockTagReader(), &MockProber{}, nil, nil)
	_, _, err := service.Scan(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCurrentBeforeScan(t *testing.T) {
	service := NewService(testConfig(t.TempDir()), NewMockTagReader(), &MockProber{}, nil, nil)
	if _, ok := service.Current(); ok {
		t.Error("Current should report no catalog before the first scan")
	}
	if _, ok := service.LastReport(); ok {
		t.Error("LastReport should report no scan before the first scan")
	}
}
