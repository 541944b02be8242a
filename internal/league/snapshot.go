package league

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// ExportSnapshot returns a full copy of the league data.
func (s *store) ExportSnapshot() (*Snapshot, error) {
	players, err := s.GetPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to export players: %w", err)
	}

	days, err := s.GetDays()
	if err != nil {
		return nil, fmt.Errorf("failed to export days: %w", err)
	}

	snap := &Snapshot{Players: players}
	for _, day := range days {
		evs, err := s.GetEvaluations(day, "")
		if err != nil {
			return nil, fmt.Errorf("failed to export evaluations for day %d: %w", day, err)
		}
		snap.Evaluations = append(snap.Evaluations, evs...)
	}
	log.Info("League snapshot exported", "players", len(snap.Players), "evaluations", len(snap.Evaluations))
	return snap, nil
}

// RestoreSnapshot replaces the whole league with the snapshot contents.
func (s *store) RestoreSnapshot(snap *Snapshot) error {
	if err := s.DeleteAllEvaluations(); err != nil {
		return fmt.Errorf("failed to clear evaluations: %w", err)
	}
	if err := s.DeleteAllPlayers(); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}
	if err := s.BulkCreatePlayers(snap.Players); err != nil {
		return fmt.Errorf("failed to restore players: %w", err)
	}
	if err := s.BulkCreateEvaluations(snap.Evaluations); err != nil {
		return fmt.Errorf("failed to restore evaluations: %w", err)
	}
	log.Info("League snapshot restored", "players", len(snap.Players), "evaluations", len(snap.Evaluations))
	return nil
}
