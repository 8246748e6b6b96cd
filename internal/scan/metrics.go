package scan

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the scanner. A nil
// *Metrics is valid and records nothing, which keeps tests free of the
// global registry.
type Metrics struct {
	FilesProcessed prometheus.Counter
	SongsCreated   prometheus.Counter
	CoversFound    prometheus.Counter
	ItemErrors     prometheus.Counter
	APICalls       prometheus.Counter
	APIErrors      prometheus.Counter
	ScanDuration   prometheus.Histogram
}

// NewMetrics registers the scanner metrics with the default registry.
// Call it once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		FilesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sonusitory_scan_files_processed_total",
			Help: "The total number of audio files examined by scans",
		}),
		SongsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sonusitory_scan_songs_created_total",
			Help: "The total number of new song rows created by scans",
		}),
		CoversFound: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sonusitory_scan_covers_found_total",
			Help: "The total number of album covers resolved by scans",
		}),
		ItemErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sonusitory_scan_item_errors_total",
			Help: "The total number of per-file and per-folder errors skipped over",
		}),
		APICalls: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sonusitory_scan_drive_calls_total",
			Help: "The total number of Drive API calls made by scans",
		}),
		APIErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sonusitory_scan_drive_errors_total",
			Help: "The total number of Drive API errors",
		}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sonusitory_scan_duration_seconds",
			Help:    "The duration of complete scan runs in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (m *Metrics) incFilesProcessed() {
	if m != nil {
		m.FilesProcessed.Inc()
	}
}

func (m *Metrics) incSongsCreated() {
	if m != nil {
		m.SongsCreated.Inc()
	}
}

func (m *Metrics) incCoversFound() {
	if m != nil {
		m.CoversFound.Inc()
	}
}

func (m *Metrics) incItemErrors() {
	if m != nil {
		m.ItemErrors.Inc()
	}
}

func (m *Metrics) incAPICalls() {
	if m != nil {
		m.APICalls.Inc()
	}
}

func (m *Metrics) incAPIErrors() {
	if m != nil {
		m.APIErrors.Inc()
	}
}

func (m *Metrics) observeDuration(d time.Duration) {
	if m != nil {
		m.ScanDuration.Observe(d.Seconds())
	}
}
