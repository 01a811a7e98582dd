package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tunesleuth/src/features/config"
	"tunesleuth/src/features/metrics"
	"tunesleuth/src/music"
)

// ErrNoLibrary is returned when analysis is requested before any scan has
// produced a library.
var ErrNoLibrary = errors.New("no scanned library available")

// LibrarySource provides the most recent scanned library. Implemented by the
// scanning service.
type LibrarySource interface {
	Current() (*music.Library, bool)
}

// Service exposes pattern analysis to the transport layers.
type Service struct {
	detector *Detector
	source   LibrarySource
	config   *config.Manager
	recorder *metrics.Recorder
}

// NewService creates a new analysis service.
func NewService(source LibrarySource, cfg *config.Manager, recorder *metrics.Recorder) *Service {
	return &Service{
		detector: NewDetector(),
		source:   source,
		config:   cfg,
		recorder: recorder,
	}
}

// DefaultOptions returns the engine options configured for serve mode.
func (s *Service) DefaultOptions() Options {
	if s.config == nil {
		return Options{Explain: true}
	}
	cfg := s.config.Get().Analysis
	return Options{Explain: cfg.Explain, IncludeLowConfidence: cfg.IncludeLowConfidence}
}

// Report analyzes the current library with the given options.
func (s *Service) Report(ctx context.Context, opts Options) (music.AnalysisReport, error) {
	lib, ok := s.source.Current()
	if !ok {
		return music.AnalysisReport{}, ErrNoLibrary
	}

	start := time.Now()
	report, err := s.detector.Analyze(lib, opts)
	if err != nil {
		return music.AnalysisReport{}, err
	}

	s.recorder.ObserveAnalysis(time.Since(start))
	for _, m := range append(report.FilenamePatterns, report.FolderPatterns...) {
		s.recorder.SetPatternScore(string(m.Category), m.ID, m.Score)
	}

	slog.Info("Pattern analysis completed",
		"tracks", len(lib.Tracks),
		"filename_patterns", len(report.FilenamePatterns),
		"folder_patterns", len(report.FolderPatterns),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return report, nil
}

// SummaryLine renders one summary entry for presentation layers.
func SummaryLine(m *music.PatternMatch) string {
	if m == nil {
		return "no dominant pattern detected"
	}
	return fmt.Sprintf("%s (%d%%)", m.Description, m.Percent())
}
