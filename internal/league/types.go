package league

import (
	"database/sql"
	"sync"
)

// Role is one of the four fixed player roles.
type Role string

const (
	RoleGoalkeeper Role = "goalkeeper"
	RoleDefender   Role = "defender"
	RoleMidfielder Role = "midfielder"
	RoleForward    Role = "forward"
)

// Roles lists all roles in pitch order.
var Roles = []Role{RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleForward}

// Player is a league player. Name and RealTeam are stored uppercase.
type Player struct {
	Code     int    `json:"code" msgpack:"code"`
	Name     string `json:"name" msgpack:"name"`
	RealTeam string `json:"real_team" msgpack:"real_team"`
	Role     Role   `json:"role" msgpack:"role"`
	Cost     int    `json:"cost" msgpack:"cost"`
}

// Evaluation is a per-matchday score of a player. A Vote of zero means the
// player was not evaluated on that day. PlayerName and PlayerTeam are filled
// from the join when reading, they are not stored on the row.
type Evaluation struct {
	PlayerCode int     `json:"player_code" msgpack:"player_code"`
	Day        int     `json:"day" msgpack:"day"`
	Vote       float64 `json:"vote" msgpack:"vote"`
	FantaVote  float64 `json:"fanta_vote" msgpack:"fanta_vote"`
	Cost       int     `json:"cost" msgpack:"cost"`
	PlayerName string  `json:"player_name,omitempty" msgpack:"-"`
	PlayerTeam string  `json:"player_team,omitempty" msgpack:"-"`
}

// Snapshot is a full copy of the league data, used for backup and restore.
type Snapshot struct {
	Players     []Player     `msgpack:"players"`
	Evaluations []Evaluation `msgpack:"evaluations"`
}

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
