package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncImportRuns()
	AddLinesImported(n int)
	ObserveImportDuration(duration float64)
	IncAggregationRuns()
	ObserveAggregationDuration(duration float64)
	IncReportsBuilt()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}
