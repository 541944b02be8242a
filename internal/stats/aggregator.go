package stats

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// accumulator collects a single player's evaluated votes.
type accumulator struct {
	fvSum     float64
	vSum      float64
	evaluated int
}

// Compute builds the per-player summary from the full evaluation history.
// A player with no evaluated matchdays gets zero averages, never an error.
// When no matchday has been imported yet the summary is empty. The progress
// callback, if set, is invoked once per processed player.
func (e *Engine) Compute(progress ProgressFunc) (Summary, error) {
	start := time.Now()

	days, err := e.store.GetDays()
	if err != nil {
		return nil, fmt.Errorf("failed to load matchdays: %w", err)
	}
	if len(days) == 0 {
		log.Debug("No matchdays imported yet, nothing to aggregate")
		return Summary{}, nil
	}
	totalDays := len(days)
	lastDay := days[len(days)-1]

	acc := make(map[int]*accumulator)
	lastCosts := make(map[int]int)
	for _, day := range days {
		evs, err := e.store.GetEvaluations(day, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load evaluations for day %d: %w", day, err)
		}
		for _, ev := range evs {
			if day == lastDay {
				lastCosts[ev.PlayerCode] = ev.Cost
			}
			if ev.Vote <= 0 {
				continue
			}
			a := acc[ev.PlayerCode]
			if a == nil {
				a = &accumulator{}
				acc[ev.PlayerCode] = a
			}
			a.fvSum += ev.FantaVote
			a.vSum += ev.Vote
			a.evaluated++
		}
	}

	players, err := e.store.GetPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	summary := make(Summary, len(players))
	for i, p := range players {
		avg := PlayerAverages{}
		if a := acc[p.Code]; a != nil {
			avg.FVAvg = a.fvSum / float64(a.evaluated)
			avg.VAvg = a.vSum / float64(a.evaluated)
			avg.Rate = 100 * float64(a.evaluated) / float64(totalDays)
		}
		if lastCost, ok := lastCosts[p.Code]; ok {
			avg.Cost = CostIndicator{LastCost: lastCost, Delta: lastCost - p.Cost, HasData: true}
		} else {
			avg.Cost = CostIndicator{LastCost: p.Cost}
		}
		summary[p.Code] = avg
		if progress != nil {
			progress(i+1, len(players))
		}
	}

	e.metrics.IncAggregationRuns()
	e.metrics.ObserveAggregationDuration(time.Since(start).Seconds())
	log.Debug("Aggregation complete", "players", len(players), "days", totalDays, "last_day", lastDay)
	return summary, nil
}
