package league

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a new LeagueStore backed by the given database.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// playerColumns maps the sortable player columns to their SQL names. Only
// whitelisted names ever reach ORDER BY.
var playerColumns = map[string]string{
	"code":      "code",
	"name":      "name",
	"real_team": "real_team",
	"cost":      "cost",
}

// evaluationColumns maps the sortable evaluation columns to their SQL names
// on the evaluations/players join.
var evaluationColumns = map[string]string{
	"player_code": "p.code",
	"player_name": "p.name",
	"player_team": "p.real_team",
	"fanta_vote":  "e.fanta_vote",
	"vote":        "e.vote",
	"cost":        "e.cost",
}

func (s *store) GetPlayers() ([]Player, error) {
	return s.GetPlayersOrdered("", "code", false)
}

func (s *store) GetPlayerByCode(code int) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT code, name, real_team, role, cost FROM players WHERE code = ?", code)
	var p Player
	err := row.Scan(&p.Code, &p.Name, &p.RealTeam, &p.Role, &p.Cost)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query player %d: %w", code, err)
	}
	return &p, nil
}

func (s *store) GetPlayersByRole(role Role) ([]Player, error) {
	return s.GetPlayersOrdered(role, "code", false)
}

// GetPlayersOrdered returns players ordered by the given column, optionally
// filtered by role. An empty role means all players.
func (s *store) GetPlayersOrdered(role Role, column string, desc bool) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := playerColumns[column]
	if !ok {
		return nil, fmt.Errorf("%w: unknown player sort column %q", ErrInvalidArgument, column)
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	query := "SELECT code, name, real_team, role, cost FROM players"
	var args []any
	if role != "" {
		query += " WHERE role = ?"
		args = append(args, string(role))
	}
	query += fmt.Sprintf(" ORDER BY %s %s", col, direction)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.Code, &p.Name, &p.RealTeam, &p.Role, &p.Cost); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) CountPlayers() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (s *store) CreatePlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO players (code, name, real_team, role, cost) VALUES (?, ?, ?, ?, ?)",
		p.Code, strings.ToUpper(p.Name), strings.ToUpper(p.RealTeam), string(p.Role), p.Cost,
	)
	if err != nil {
		return fmt.Errorf("failed to create player %d: %w", p.Code, err)
	}
	log.Info("New player stored", "code", p.Code, "name", strings.ToUpper(p.Name))
	return nil
}

func (s *store) UpdatePlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"UPDATE players SET name = ?, real_team = ?, role = ?, cost = ? WHERE code = ?",
		strings.ToUpper(p.Name), strings.ToUpper(p.RealTeam), string(p.Role), p.Cost, p.Code,
	)
	if err != nil {
		return fmt.Errorf("failed to update player %d: %w", p.Code, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: player %d", ErrNotFound, p.Code)
	}
	log.Info("Player updated", "code", p.Code, "name", strings.ToUpper(p.Name))
	return nil
}

// BulkCreatePlayers inserts all players in a single transaction.
func (s *store) BulkCreatePlayers(players []Player) error {
	if len(players) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO players (code, name, real_team, role, cost) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.Code, strings.ToUpper(p.Name), strings.ToUpper(p.RealTeam), string(p.Role), p.Cost); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to bulk insert player %d: %w", p.Code, err)
		}
	}
	return tx.Commit()
}

func (s *store) DeletePlayer(code int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Evaluations cascade via the foreign key.
	res, err := s.db.Exec("DELETE FROM players WHERE code = ?", code)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", code, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: player %d", ErrNotFound, code)
	}
	return nil
}

func (s *store) DeleteAllPlayers() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM players")
	return err
}

func (s *store) GetEvaluations(day int, role Role) ([]Evaluation, error) {
	return s.GetEvaluationsOrdered(day, role, "player_code", false)
}

// GetEvaluationsOrdered returns a day's evaluations joined with their player,
// optionally filtered by role, ordered by the given column.
func (s *store) GetEvaluationsOrdered(day int, role Role, column string, desc bool) ([]Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := evaluationColumns[column]
	if !ok {
		return nil, fmt.Errorf("%w: unknown evaluation sort column %q", ErrInvalidArgument, column)
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	query := `
		SELECT e.player_code, e.day, e.vote, e.fanta_vote, e.cost, p.name, p.real_team
		FROM evaluations e
		JOIN players p ON p.code = e.player_code
		WHERE e.day = ?`
	args := []any{day}
	if role != "" {
		query += " AND p.role = ?"
		args = append(args, string(role))
	}
	query += fmt.Sprintf(" ORDER BY %s %s", col, direction)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query evaluations", "error", err, "day", day)
		return nil, err
	}
	defer rows.Close()

	var evs []Evaluation
	for rows.Next() {
		var ev Evaluation
		if err := rows.Scan(&ev.PlayerCode, &ev.Day, &ev.Vote, &ev.FantaVote, &ev.Cost, &ev.PlayerName, &ev.PlayerTeam); err != nil {
			log.Error("Failed to scan evaluation row", "error", err)
			continue
		}
		evs = append(evs, ev)
	}
	return evs, rows.Err()
}

func (s *store) GetEvaluation(code, day int) (*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		"SELECT player_code, day, vote, fanta_vote, cost FROM evaluations WHERE player_code = ? AND day = ?",
		code, day,
	)
	var ev Evaluation
	err := row.Scan(&ev.PlayerCode, &ev.Day, &ev.Vote, &ev.FantaVote, &ev.Cost)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation %d/%d: %w", code, day, err)
	}
	return &ev, nil
}

func (s *store) CreateEvaluation(ev Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO evaluations (player_code, day, vote, fanta_vote, cost) VALUES (?, ?, ?, ?, ?)",
		ev.PlayerCode, ev.Day, ev.Vote, ev.FantaVote, ev.Cost,
	)
	if err != nil {
		return fmt.Errorf("failed to create evaluation %d/%d: %w", ev.PlayerCode, ev.Day, err)
	}
	return nil
}

// UpdateEvaluation updates fanta_vote, vote and cost in place for the given
// (code, day) pair.
func (s *store) UpdateEvaluation(code, day int, fantaVote, vote float64, cost int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"UPDATE evaluations SET fanta_vote = ?, vote = ?, cost = ? WHERE player_code = ? AND day = ?",
		fantaVote, vote, cost, code, day,
	)
	if err != nil {
		return fmt.Errorf("failed to update evaluation %d/%d: %w", code, day, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: evaluation %d/%d", ErrNotFound, code, day)
	}
	return nil
}

// BulkCreateEvaluations inserts all evaluations in a single transaction.
func (s *store) BulkCreateEvaluations(evs []Evaluation) error {
	if len(evs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO evaluations (player_code, day, vote, fanta_vote, cost) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, ev := range evs {
		if _, err := stmt.Exec(ev.PlayerCode, ev.Day, ev.Vote, ev.FantaVote, ev.Cost); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to bulk insert evaluation %d/%d: %w", ev.PlayerCode, ev.Day, err)
		}
	}
	return tx.Commit()
}

func (s *store) DeleteEvaluation(code, day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM evaluations WHERE player_code = ? AND day = ?", code, day)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation %d/%d: %w", code, day, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: evaluation %d/%d", ErrNotFound, code, day)
	}
	return nil
}

func (s *store) DeleteEvaluationsForDay(day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM evaluations WHERE day = ?", day)
	if err != nil {
		return fmt.Errorf("failed to delete evaluations for day %d: %w", day, err)
	}
	log.Info("Deleted all evaluations for day", "day", day)
	return nil
}

func (s *store) DeleteAllEvaluations() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM evaluations")
	return err
}

// GetDays returns the distinct imported matchdays in ascending order.
func (s *store) GetDays() ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT DISTINCT day FROM evaluations ORDER BY day")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []int
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// GetLastImportedDay returns the highest imported day, or zero when no
// evaluations are stored yet.
func (s *store) GetLastImportedDay() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var day int
	err := s.db.QueryRow("SELECT COALESCE(MAX(day), 0) FROM evaluations").Scan(&day)
	if err != nil {
		return 0, fmt.Errorf("failed to query last imported day: %w", err)
	}
	return day, nil
}
