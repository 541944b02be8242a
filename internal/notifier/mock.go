package notifier

import (
	"sync"

	"github.com/magiccup/fantastat/internal/importer"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
type Mock struct {
	mu sync.Mutex

	SendImportSummaryFunc func(report *importer.Report, dryRun bool) error
	SendLeaderboardFunc   func(players []league.Player, summary stats.Summary, dryRun bool) error

	ImportSummaryCalls []*importer.Report
	LeaderboardCalls   []stats.Summary
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendImportSummary(report *importer.Report, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImportSummaryCalls = append(m.ImportSummaryCalls, report)
	if m.SendImportSummaryFunc != nil {
		return m.SendImportSummaryFunc(report, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(players []league.Player, summary stats.Summary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LeaderboardCalls = append(m.LeaderboardCalls, summary)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(players, summary, dryRun)
	}
	return nil
}
