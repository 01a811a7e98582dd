package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the Prometheus instruments for scans and analyses. A nil
// Recorder is valid and records nothing, so callers never need to guard.
type Recorder struct {
	scansTotal      prometheus.Counter
	scanDuration    prometheus.Histogram
	tracksScanned   prometheus.Gauge
	analysesTotal   prometheus.Counter
	analysisSeconds prometheus.Histogram
	patternScore    *prometheus.GaugeVec
}

// NewRecorder registers the instruments on the default registry.
func NewRecorder() *Recorder {
	return &Recorder{
		scansTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tunesleuth_scans_total",
			Help: "Number of library scans performed.",
		}),
		scanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tunesleuth_scan_duration_seconds",
			Help:    "Wall time of library scans.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		tracksScanned: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tunesleuth_library_tracks",
			Help: "Number of tracks found by the most recent scan.",
		}),
		analysesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tunesleuth_analyses_total",
			Help: "Number of pattern analyses performed.",
		}),
		analysisSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tunesleuth_analysis_duration_seconds",
			Help:    "Wall time of pattern analyses.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		patternScore: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tunesleuth_pattern_score",
			Help: "Most recent confidence score per pattern.",
		}, []string{"category", "pattern"}),
	}
}

// ObserveScan records one completed scan.
func (r *Recorder) ObserveScan(d time.Duration, tracks int) {
	if r == nil {
		return
	}
	r.scansTotal.Inc()
	r.scanDuration.Observe(d.Seconds())
	r.tracksScanned.Set(float64(tracks))
}

// ObserveAnalysis records one completed analysis.
func (r *Recorder) ObserveAnalysis(d time.Duration) {
	if r == nil {
		return
	}
	r.analysesTotal.Inc()
	r.analysisSeconds.Observe(d.Seconds())
}

// SetPatternScore publishes the latest score for one pattern.
func (r *Recorder) SetPatternScore(category, pattern string, score float64) {
	if r == nil {
		return
	}
	r.patternScore.WithLabelValues(category, pattern).Set(score)
}
