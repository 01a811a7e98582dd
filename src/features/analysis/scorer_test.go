package analysis

import (
	"testing"

	"tunesleuth/src/music"
)

func TestBandMapping(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		ratio float64
		want  music.Band
	}{
		{1.0, music.BandVeryHigh},
		{0.95, music.BandVeryHigh},
		{0.90, music.BandVeryHigh},
		{0.8999, music.BandHigh},
		{0.75, music.BandHigh},
		{0.60, music.BandHigh},
		{0.5999, music.BandMedium},
		{0.45, music.BandMedium},
		{0.30, music.BandMedium},
		{0.2999, music.BandLow},
		{0.10, music.BandLow},
		{0.001, music.BandLow},
	}
	for _, tt := range tests {
		if got := th.Band(tt.ratio); got != tt.want {
			t.Errorf("Band(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestScoreIsMatchRatio(t *testing.T) {
	th := DefaultThresholds()
	score, band, ok := th.Score(847, 1247)
	if !ok {
		t.Fatal("Score(847, 1247) should be included")
	}
	want := 847.0 / 1247.0
	if score != want {
		t.Errorf("score = %v, want %v", score, want)
	}
	if band != music.BandHigh {
		t.Errorf("band = %v, want %v", band, music.BandHigh)
	}
}

func TestScoreExcludesEmptyCounts(t *testing.T) {
	th := DefaultThresholds()
	if _, _, ok := th.Score(0, 100); ok {
		t.Error("zero matched must be excluded, not reported as Low")
	}
	if _, _, ok := th.Score(0, 0); ok {
		t.Error("zero considered must be excluded")
	}
}
