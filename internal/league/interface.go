package league

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	GetPlayers() ([]Player, error)
	GetPlayerByCode(code int) (*Player, error)
	GetPlayersByRole(role Role) ([]Player, error)
	GetPlayersOrdered(role Role, column string, desc bool) ([]Player, error)
	CountPlayers() (int, error)
	CreatePlayer(p Player) error
	UpdatePlayer(p Player) error
	BulkCreatePlayers(players []Player) error
	DeletePlayer(code int) error
	DeleteAllPlayers() error

	GetEvaluations(day int, role Role) ([]Evaluation, error)
	GetEvaluationsOrdered(day int, role Role, column string, desc bool) ([]Evaluation, error)
	GetEvaluation(code, day int) (*Evaluation, error)
	CreateEvaluation(ev Evaluation) error
	UpdateEvaluation(code, day int, fantaVote, vote float64, cost int) error
	BulkCreateEvaluations(evs []Evaluation) error
	DeleteEvaluation(code, day int) error
	DeleteEvaluationsForDay(day int) error
	DeleteAllEvaluations() error

	GetDays() ([]int, error)
	GetLastImportedDay() (int, error)

	ExportSnapshot() (*Snapshot, error)
	RestoreSnapshot(snap *Snapshot) error
}
