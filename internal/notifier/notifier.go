package notifier

import (
	"github.com/magiccup/fantastat/internal/importer"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/stats"
)

// Notifier defines a high-level interface for announcing business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendImportSummary announces a finished import run.
	SendImportSummary(report *importer.Report, dryRun bool) error
	// SendLeaderboard posts the ranked players with their statistics.
	SendLeaderboard(players []league.Player, summary stats.Summary, dryRun bool) error
}

// Nop is a Notifier that does nothing, used when no provider is configured.
type Nop struct{}

func NewNop() *Nop {
	return &Nop{}
}

func (*Nop) SendImportSummary(*importer.Report, bool) error {
	return nil
}

func (*Nop) SendLeaderboard([]league.Player, stats.Summary, bool) error {
	return nil
}
