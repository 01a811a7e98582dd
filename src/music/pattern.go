package music

import "math"

// Band is the qualitative confidence bucket derived from a match ratio.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
	BandVeryHigh
)

func (b Band) String() string {
	switch b {
	case BandVeryHigh:
		return "Very High"
	case BandHigh:
		return "High"
	case BandMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// MarshalText renders the band name in JSON and YAML output.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Category separates the independent pattern dimensions. A track can count
// toward a pattern in each category; categories are never merged into one
// score.
type Category string

const (
	CategoryFilename        Category = "filename"
	CategoryFolderStructure Category = "folder-structure"
)

// PatternMatch is one scored, explained hypothesis about a convention the
// library follows. It is created per analysis run and never mutated after
// construction.
type PatternMatch struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Band        Band     `json:"band"`
	Score       float64  `json:"score"`
	Matched     int      `json:"matched"`
	Considered  int      `json:"considered"`
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Percent returns the score rounded to a whole percentage.
func (m PatternMatch) Percent() int {
	return int(math.Round(m.Score * 100))
}

// AnalysisReport is the detector's return value: ranked matches per
// category plus the primary pattern summary.
type AnalysisReport struct {
	FilenamePatterns []PatternMatch `json:"filenamePatterns"`
	FolderPatterns   []PatternMatch `json:"folderPatterns"`
	Summary          Summary        `json:"summary"`
}

// Summary names the dominant convention per category. A nil entry means no
// pattern reached at least a Medium band; presentation layers report it as
// "no dominant pattern detected".
type Summary struct {
	PrimaryFilename *PatternMatch `json:"primaryFilename"`
	PrimaryFolder   *PatternMatch `json:"primaryFolder"`
}
