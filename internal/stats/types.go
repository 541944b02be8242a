package stats

import (
	"fmt"

	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/metrics"
)

// Engine computes per-player aggregate statistics over the evaluation
// history. Results are recomputed from the current store state on every
// request, the collections are small enough that caching is not worth it.
type Engine struct {
	store   league.LeagueStore
	metrics metrics.Metrics
}

// New creates a new stats Engine.
func New(store league.LeagueStore, metricsSvc metrics.Metrics) *Engine {
	return &Engine{
		store:   store,
		metrics: metricsSvc,
	}
}

// ProgressFunc reports that done of total players have been processed.
type ProgressFunc func(done, total int)

// Summary maps a player code to its computed averages.
type Summary map[int]PlayerAverages

// PlayerAverages holds the derived statistics of a single player.
type PlayerAverages struct {
	FVAvg float64       `json:"fv_avg"`
	VAvg  float64       `json:"v_avg"`
	Rate  float64       `json:"rate"`
	Cost  CostIndicator `json:"cost_indicator"`
}

// CostIndicator combines a player's most recent market cost with the signed
// delta from its acquisition cost. HasData is false when the player has no
// evaluation on the last imported day; LastCost then falls back to the
// acquisition cost.
type CostIndicator struct {
	LastCost int  `json:"last_cost"`
	Delta    int  `json:"delta"`
	HasData  bool `json:"has_data"`
}

// String renders the indicator the way the report shows it, e.g. "19 (+1)"
// or "12 (-)" when no recent evaluation exists.
func (c CostIndicator) String() string {
	if !c.HasData {
		return fmt.Sprintf("%d (-)", c.LastCost)
	}
	if c.Delta > 0 {
		return fmt.Sprintf("%d (+%d)", c.LastCost, c.Delta)
	}
	return fmt.Sprintf("%d (%d)", c.LastCost, c.Delta)
}
