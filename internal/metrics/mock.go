package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	importRuns           int
	linesImported        int
	importDurations      []float64
	aggregationRuns      int
	aggregationDurations []float64
	reportsBuilt         int
	notifSent            int
	notifFailed          int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		importDurations:      make([]float64, 0),
		aggregationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncImportRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importRuns++
}

func (m *Mock) AddLinesImported(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.linesImported += n
}

func (m *Mock) ObserveImportDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importDurations = append(m.importDurations, duration)
}

func (m *Mock) IncAggregationRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregationRuns++
}

func (m *Mock) ObserveAggregationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregationDurations = append(m.aggregationDurations, duration)
}

func (m *Mock) IncReportsBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportsBuilt++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// ImportRuns returns the number of times IncImportRuns was called.
func (m *Mock) ImportRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importRuns
}

// LinesImported returns the total recorded by AddLinesImported.
func (m *Mock) LinesImported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.linesImported
}

// AggregationRuns returns the number of times IncAggregationRuns was called.
func (m *Mock) AggregationRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aggregationRuns
}

// ReportsBuilt returns the number of times IncReportsBuilt was called.
func (m *Mock) ReportsBuilt() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reportsBuilt
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
