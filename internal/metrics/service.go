package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ImportRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantastat_import_runs_total",
			Help: "The total number of import runs.",
		}),
		LinesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantastat_import_lines_total",
			Help: "The total number of import lines processed.",
		}),
		ImportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fantastat_import_duration_seconds",
			Help:    "The duration of import runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		AggregationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantastat_aggregation_runs_total",
			Help: "The total number of statistics aggregation runs.",
		}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fantastat_aggregation_duration_seconds",
			Help:    "The duration of statistics aggregation runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ReportsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantastat_reports_built_total",
			Help: "The total number of HTML reports generated.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantastat_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantastat_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fantastat_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ImportRuns,
		s.LinesImported,
		s.ImportDuration,
		s.AggregationRuns,
		s.AggregationDuration,
		s.ReportsBuilt,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncImportRuns() {
	s.ImportRuns.Inc()
}

func (s *Service) AddLinesImported(n int) {
	s.LinesImported.Add(float64(n))
}

func (s *Service) ObserveImportDuration(duration float64) {
	s.ImportDuration.Observe(duration)
}

func (s *Service) IncAggregationRuns() {
	s.AggregationRuns.Inc()
}

func (s *Service) ObserveAggregationDuration(duration float64) {
	s.AggregationDuration.Observe(duration)
}

func (s *Service) IncReportsBuilt() {
	s.ReportsBuilt.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
