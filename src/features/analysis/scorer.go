package analysis

import "tunesleuth/src/music"

// Thresholds are the inclusive lower bounds for each confidence band. They
// are fixed application-wide (see DefaultThresholds) so scores stay
// comparable across runs, but passed into the scorer explicitly so tests can
// substitute alternate sets.
type Thresholds struct {
	VeryHigh float64
	High     float64
	Medium   float64
}

// DefaultThresholds returns the band cutoffs used by the application.
func DefaultThresholds() Thresholds {
	return Thresholds{VeryHigh: 0.90, High: 0.60, Medium: 0.30}
}

// Band maps a positive match ratio to its qualitative band.
func (t Thresholds) Band(ratio float64) music.Band {
	switch {
	case ratio >= t.VeryHigh:
		return music.BandVeryHigh
	case ratio >= t.High:
		return music.BandHigh
	case ratio >= t.Medium:
		return music.BandMedium
	default:
		return music.BandLow
	}
}

// Score converts raw counts into the numeric score and band. The score is
// the plain match ratio rather than a statistical interval: every score must
// be justifiable in one sentence. ok is false when the match is excluded
// from results entirely (nothing matched, or nothing was considered).
func (t Thresholds) Score(matched, considered int) (float64, music.Band, bool) {
	if considered == 0 || matched == 0 {
		return 0, music.BandLow, false
	}
	ratio := float64(matched) / float64(considered)
	return ratio, t.Band(ratio), true
}
