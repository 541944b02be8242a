package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	ImportRuns          prometheus.Counter
	LinesImported       prometheus.Counter
	ImportDuration      prometheus.Histogram
	AggregationRuns     prometheus.Counter
	AggregationDuration prometheus.Histogram
	ReportsBuilt        prometheus.Counter
	NotifSent           prometheus.Counter
	NotifFailed         prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
