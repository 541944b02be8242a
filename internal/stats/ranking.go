package stats

import (
	"fmt"
	"sort"

	"github.com/magiccup/fantastat/internal/league"
)

// PlayerColumn selects the ranking column for player views. Identity columns
// use the store's natural ascending order, derived and cost columns rank
// descending.
type PlayerColumn string

const (
	PlayerByCode          PlayerColumn = "code"
	PlayerByName          PlayerColumn = "name"
	PlayerByTeam          PlayerColumn = "real_team"
	PlayerByFVAvg         PlayerColumn = "fv_avg"
	PlayerByVAvg          PlayerColumn = "v_avg"
	PlayerByRate          PlayerColumn = "rate"
	PlayerByCostIndicator PlayerColumn = "cost_indicator"
	PlayerByCost          PlayerColumn = "cost"
)

// EvaluationColumn selects the ranking column for a day's evaluation view.
type EvaluationColumn string

const (
	EvaluationByPlayerCode EvaluationColumn = "player_code"
	EvaluationByPlayerName EvaluationColumn = "player_name"
	EvaluationByPlayerTeam EvaluationColumn = "player_team"
	EvaluationByFantaVote  EvaluationColumn = "fanta_vote"
	EvaluationByVote       EvaluationColumn = "vote"
	EvaluationByCost       EvaluationColumn = "cost"
)

// SortedPlayers returns the players of a role ordered by the given column.
// Derived columns sort descending on a fresh Compute; the sort is stable, so
// ties keep the store's code order. The cost indicator ranks by the most
// recent numeric cost, never by its formatted string.
func (e *Engine) SortedPlayers(role league.Role, column PlayerColumn) ([]league.Player, error) {
	switch column {
	case PlayerByCode, PlayerByName, PlayerByTeam:
		return e.store.GetPlayersOrdered(role, string(column), false)
	case PlayerByCost:
		return e.store.GetPlayersOrdered(role, string(column), true)
	case PlayerByFVAvg, PlayerByVAvg, PlayerByRate, PlayerByCostIndicator:
		// fall through to the derived sort below
	default:
		return nil, fmt.Errorf("%w: unknown player column %q", league.ErrInvalidArgument, column)
	}

	players, err := e.store.GetPlayersByRole(role)
	if err != nil {
		return nil, err
	}
	summary, err := e.Compute(nil)
	if err != nil {
		return nil, err
	}

	key := func(code int) float64 {
		avg := summary[code]
		switch column {
		case PlayerByFVAvg:
			return avg.FVAvg
		case PlayerByVAvg:
			return avg.VAvg
		case PlayerByRate:
			return avg.Rate
		default: // PlayerByCostIndicator
			return float64(avg.Cost.LastCost)
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		return key(players[i].Code) > key(players[j].Code)
	})
	return players, nil
}

// SortedEvaluations returns a day's evaluations for a role ordered by the
// given column. Player identity columns sort ascending, score and cost
// columns descending.
func (e *Engine) SortedEvaluations(day int, role league.Role, column EvaluationColumn) ([]league.Evaluation, error) {
	switch column {
	case EvaluationByPlayerCode, EvaluationByPlayerName, EvaluationByPlayerTeam:
		return e.store.GetEvaluationsOrdered(day, role, string(column), false)
	case EvaluationByFantaVote, EvaluationByVote, EvaluationByCost:
		return e.store.GetEvaluationsOrdered(day, role, string(column), true)
	}
	return nil, fmt.Errorf("%w: unknown evaluation column %q", league.ErrInvalidArgument, column)
}
