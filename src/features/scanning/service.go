package scanning

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tunesleuth/src/features/config"
	"tunesleuth/src/features/metrics"
	"tunesleuth/src/music"
)

// TagReader reads embedded metadata from an audio file.
type TagReader interface {
	ReadTags(ctx context.Context, path string) (music.Tags, error)
}

// DurationProber determines the playing time of an audio file in seconds.
type DurationProber interface {
	Duration(path string) (int, error)
}

// SnapshotStore persists the scanned catalog between runs.
type SnapshotStore interface {
	Save(ctx context.Context, lib *music.Library) error
	Load(ctx context.Context) (*music.Library, error)
}

// ProgressFunc is called per processed file during a scan.
type ProgressFunc func(done, total int, path string)

// ScanReport summarizes one scan run. Files the scanner could not fully read
// are still cataloged, the counters show how much metadata is missing.
type ScanReport struct {
	Root           string        `json:"root"`
	TracksFound    int           `json:"tracksFound"`
	TagErrors      int           `json:"tagErrors"`
	DurationErrors int           `json:"durationErrors"`
	Elapsed        time.Duration `json:"elapsed"`
	ScannedAt      time.Time     `json:"scannedAt"`
}

// Service walks the library path and builds the in-memory catalog that
// analysis runs against. The catalog is read-only, scanning never renames,
// retags or moves any file.
type Service struct {
	config   *config.Manager
	reader   TagReader
	prober   DurationProber
	store    SnapshotStore
	recorder *metrics.Recorder

	mu         sync.RWMutex
	current    *music.Library
	lastReport *ScanReport
}

// NewService creates a new scanning service. store may be nil when snapshots
// are disabled.
func NewService(cfg *config.Manager, reader TagReader, prober DurationProber, store SnapshotStore, recorder *metrics.Recorder) *Service {
	return &Service{
		config:   cfg,
		reader:   reader,
		prober:   prober,
		store:    store,
		recorder: recorder,
	}
}

// Current returns the most recent catalog.
func (s *Service) Current() (*music.Library, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// LastReport returns the report of the most recent scan.
func (s *Service) LastReport() (*ScanReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport, s.lastReport != nil
}

// Stats computes aggregate statistics over the current catalog.
func (s *Service) Stats() (music.LibraryStats, bool) {
	lib, ok := s.Current()
	if !ok {
		return music.LibraryStats{}, false
	}
	return lib.Stats(), true
}

// Scan walks the configured library path and rebuilds the catalog. Files
// that fail to yield tags or durations stay in the catalog with whatever
// could be read, their names and locations still feed pattern analysis.
func (s *Service) Scan(ctx context.Context, progress ProgressFunc) (*music.Library, *ScanReport, error) {
	cfg := s.config.Get()
	root := cfg.LibraryPath
	start := time.Now()
	slog.Info("Starting library scan", "path", root)

	paths, err := s.collectFiles(root, cfg.Scan)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk library path: %w", err)
	}

	lib := &music.Library{Root: root}
	report := &ScanReport{Root: root}

	for i, entry := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		track := music.Track{
			Path:     entry.path,
			FileName: filepath.Base(entry.path),
			Size:     entry.size,
			Format:   strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.path)), "."),
		}

		tags, err := s.reader.ReadTags(ctx, entry.path)
		if err != nil {
			report.TagErrors++
			slog.Debug("Could not read tags", "path", entry.path, "error", err)
		} else {
			track.Tags = tags
		}

		if cfg.Scan.ReadDurations {
			duration, err := s.prober.Duration(entry.path)
			if err != nil {
				report.DurationErrors++
				slog.Debug("Could not probe duration", "path", entry.path, "error", err)
			} else {
				track.Duration = duration
			}
		}

		lib.Tracks = append(lib.Tracks, track)
		if progress != nil {
			progress(i+1, len(paths), entry.path)
		}
	}

	report.TracksFound = len(lib.Tracks)
	report.Elapsed = time.Since(start)
	report.ScannedAt = time.Now()

	s.mu.Lock()
	s.current = lib
	s.lastReport = report
	s.mu.Unlock()

	s.recorder.ObserveScan(report.Elapsed, report.TracksFound)

	if s.store != nil && cfg.Snapshot.Enabled {
		if err := s.store.Save(ctx, lib); err != nil {
			slog.Warn("Could not save catalog snapshot", "error", err)
		}
	}

	slog.Info("Library scan completed",
		"tracks", report.TracksFound,
		"tag_errors", report.TagErrors,
		"duration", report.Elapsed.Round(time.Millisecond),
	)
	return lib, report, nil
}

// RestoreSnapshot loads the persisted catalog, if any, as the current
// library. Used at startup so serve mode can answer before the first scan.
func (s *Service) RestoreSnapshot(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	lib, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = lib
	s.mu.Unlock()

	slog.Info("Catalog restored from snapshot", "tracks", len(lib.Tracks), "root", lib.Root)
	return nil
}

type fileEntry struct {
	path string
	size int64
}

// collectFiles gathers the audio files under root in walk order, which
// WalkDir keeps lexical, so repeat scans of an unchanged tree produce the
// same catalog.
func (s *Service) collectFiles(root string, cfg config.Scan) ([]fileEntry, error) {
	extensions := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	var entries []fileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal
			slog.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 && !cfg.FollowSymlinks {
			return nil
		}
		if !extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			slog.Warn("Skipping unreadable file", "path", path, "error", err)
			return nil
		}
		entries = append(entries, fileEntry{path: path, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
