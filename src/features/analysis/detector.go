package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"tunesleuth/src/music"
)

// ErrInvariant reports a matcher bug: counts where matched exceeds
// considered. This is surfaced to the caller rather than silently corrected
// because it indicates broken matcher code, not a data-quality issue.
var ErrInvariant = errors.New("pattern matcher invariant violated")

// Options are the only externally tunable knobs of the engine. Band
// thresholds are deliberately not configurable.
type Options struct {
	// Explain includes the full explanation text and example tracks in each
	// match instead of headline-only output.
	Explain bool
	// IncludeLowConfidence keeps Low-band matches in the report.
	IncludeLowConfidence bool
}

// Detector runs every known matcher over a library and aggregates the
// outcomes into a ranked report. It holds no mutable state between runs;
// Analyze is safe for concurrent use.
type Detector struct {
	thresholds Thresholds
	filename   []FilenameMatcher
	folder     []FolderMatcher
}

// NewDetector creates a detector with the standard matcher set and band
// thresholds.
func NewDetector() *Detector {
	return NewDetectorWithThresholds(DefaultThresholds())
}

// NewDetectorWithThresholds is the seam for tests that need alternate band
// cutoffs.
func NewDetectorWithThresholds(t Thresholds) *Detector {
	return &Detector{
		thresholds: t,
		filename:   FilenameMatchers(),
		folder:     FolderMatchers(),
	}
}

// Analyze inspects the library and returns ranked pattern matches per
// category. An empty library yields an empty report and no error; "no
// patterns found" is a valid outcome, never a failure.
func (d *Detector) Analyze(lib *music.Library, opts Options) (music.AnalysisReport, error) {
	var report music.AnalysisReport
	if lib == nil || len(lib.Tracks) == 0 {
		return report, nil
	}

	filename, err := d.analyzeFilenames(lib, opts)
	if err != nil {
		return music.AnalysisReport{}, err
	}
	folder, err := d.analyzeFolders(lib, opts)
	if err != nil {
		return music.AnalysisReport{}, err
	}

	report.FilenamePatterns = filename
	report.FolderPatterns = folder
	report.Summary = music.Summary{
		PrimaryFilename: primary(filename),
		PrimaryFolder:   primary(folder),
	}
	return report, nil
}

type candidate struct {
	match    music.PatternMatch
	priority int
}

func (d *Detector) analyzeFilenames(lib *music.Library, opts Options) ([]music.PatternMatch, error) {
	considered := len(lib.Tracks)
	var candidates []candidate

	for _, m := range d.filename {
		matched := 0
		var names []string
		for _, track := range lib.Tracks {
			if safeMatchFilename(m, track.Stem()) {
				matched++
				names = append(names, track.FileName)
			}
		}
		if matched > considered {
			return nil, fmt.Errorf("%w: %s counted %d of %d", ErrInvariant, m.ID, matched, considered)
		}
		score, band, ok := d.thresholds.Score(matched, considered)
		if !ok {
			continue
		}
		pm := music.PatternMatch{
			ID:          m.ID,
			Category:    music.CategoryFilename,
			Band:        band,
			Score:       score,
			Matched:     matched,
			Considered:  considered,
			Description: m.Description,
		}
		if opts.Explain {
			pm.Examples = selectExamples(names)
			pm.Explanation = buildExplanation(pm, "")
		}
		candidates = append(candidates, candidate{pm, m.Priority})
	}
	return rank(candidates, opts), nil
}

func (d *Detector) analyzeFolders(lib *music.Library, opts Options) ([]music.PatternMatch, error) {
	var candidates []candidate

	for _, m := range d.folder {
		fm := safeMatchFolders(m, lib)
		if fm.Matched > fm.Considered {
			return nil, fmt.Errorf("%w: %s counted %d of %d", ErrInvariant, m.ID, fm.Matched, fm.Considered)
		}
		score, band, ok := d.thresholds.Score(fm.Matched, fm.Considered)
		if !ok {
			continue
		}
		pm := music.PatternMatch{
			ID:          m.ID,
			Category:    music.CategoryFolderStructure,
			Band:        band,
			Score:       score,
			Matched:     fm.Matched,
			Considered:  fm.Considered,
			Description: m.Description,
		}
		if opts.Explain {
			pm.Examples = selectExamples(fm.Examples)
			pm.Explanation = buildExplanation(pm, fm.Detail)
		}
		candidates = append(candidates, candidate{pm, m.Priority})
	}
	return rank(candidates, opts), nil
}

// rank orders candidates by score descending, then declared matcher
// priority, then pattern ID, giving a fully deterministic total order.
func rank(candidates []candidate, opts Options) []music.PatternMatch {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].match.Score != candidates[j].match.Score {
			return candidates[i].match.Score > candidates[j].match.Score
		}
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority < candidates[j].priority
		}
		return candidates[i].match.ID < candidates[j].match.ID
	})

	matches := make([]music.PatternMatch, 0, len(candidates))
	for _, c := range candidates {
		if c.match.Band == music.BandLow && !opts.IncludeLowConfidence {
			continue
		}
		matches = append(matches, c.match)
	}
	return matches
}

// primary returns the top-ranked match when it is significant enough to call
// a dominant convention.
func primary(ranked []music.PatternMatch) *music.PatternMatch {
	if len(ranked) == 0 || ranked[0].Band < music.BandMedium {
		return nil
	}
	top := ranked[0]
	return &top
}

// safeMatchFilename isolates a matcher failure to the single track it
// choked on: the panic is logged and counted as a non-match. Matching is
// pure and deterministic, so there is nothing to retry.
func safeMatchFilename(m FilenameMatcher, stem string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("filename matcher failed", "matcher", m.ID, "stem", stem, "panic", r)
			ok = false
		}
	}()
	_, ok = m.Match(stem)
	return ok
}

// safeMatchFolders isolates a folder matcher failure: a panic contributes
// zero matches and the run continues with the remaining matchers.
func safeMatchFolders(m FolderMatcher, lib *music.Library) (fm FolderMatch) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("folder matcher failed", "matcher", m.ID, "panic", r)
			fm = FolderMatch{Considered: len(lib.Tracks)}
		}
	}()
	return m.Match(lib)
}
