package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/magiccup/fantastat/internal/league"
)

var dayPattern = regexp.MustCompile(`\d+`)

// DayFromPath extracts the matchday number from an evaluation filename,
// e.g. "MCC12.txt" -> 12. The last integer substring of the normalized path
// wins, so directories with numbers in them do not shadow the filename.
func DayFromPath(path string) (int, error) {
	matches := dayPattern.FindAllString(filepath.Clean(path), -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMissingDayNumber, path)
	}
	day, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMissingDayNumber, path)
	}
	return day, nil
}

// parseLine parses one "code|name|real_team|fanta_vote|vote|cost" record.
// A leading UTF-8 BOM is stripped and non-breaking spaces from the upstream
// exports become regular spaces so they cannot corrupt the numeric fields
// or glue name words together.
func parseLine(s string) (record, error) {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.TrimSpace(s)

	fields := strings.Split(s, "|")
	if len(fields) != 6 {
		return record{}, fmt.Errorf("%w: expected 6 fields, got %d", league.ErrInvalidArgument, len(fields))
	}

	code, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return record{}, fmt.Errorf("%w: bad code %q", league.ErrInvalidArgument, fields[0])
	}
	if code < 0 {
		return record{}, fmt.Errorf("%w: negative code %d", league.ErrInvalidArgument, code)
	}
	fv, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return record{}, fmt.Errorf("%w: bad fanta vote %q", league.ErrInvalidArgument, fields[3])
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
	if err != nil {
		return record{}, fmt.Errorf("%w: bad vote %q", league.ErrInvalidArgument, fields[4])
	}
	cost, err := strconv.Atoi(strings.TrimSpace(fields[5]))
	if err != nil {
		return record{}, fmt.Errorf("%w: bad cost %q", league.ErrInvalidArgument, fields[5])
	}

	return record{
		code:      code,
		name:      strings.TrimSpace(fields[1]),
		realTeam:  strings.TrimSpace(fields[2]),
		fantaVote: fv,
		vote:      v,
		cost:      cost,
	}, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// ImportPlayers imports a player file from disk.
func (imp *Importer) ImportPlayers(path string, progress ProgressFunc) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open player file: %w", err)
	}
	defer f.Close()
	return imp.ImportPlayersFrom(f, progress)
}

// ImportPlayersFrom reconciles player lines against the store: unknown codes
// are staged for a single bulk insert, known codes with a changed name or
// team are updated in place, everything else is a no-op.
func (imp *Importer) ImportPlayersFrom(r io.Reader, progress ProgressFunc) (*Report, error) {
	start := time.Now()
	report := &Report{BatchID: uuid.NewString()}

	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read player file: %w", err)
	}
	report.Total = len(lines)
	log.Info("Importing players", "batch", report.BatchID, "lines", len(lines))

	known := make(map[int]league.Player)
	players, err := imp.store.GetPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	for _, p := range players {
		known[p.Code] = p
	}

	var toCreate []league.Player
	for i, line := range lines {
		rec, err := parseLine(line)
		if err != nil {
			log.Warn("Skipping bad player line", "line", i+1, "error", err)
			report.Errors = append(report.Errors, LineError{Line: i + 1, Text: line, Err: err.Error()})
			continue
		}

		role, err := league.RoleFromCode(rec.code)
		if err != nil {
			report.Errors = append(report.Errors, LineError{Line: i + 1, Text: line, Err: err.Error()})
			continue
		}

		stored, ok := known[rec.code]
		switch {
		case !ok:
			toCreate = append(toCreate, league.Player{
				Code:     rec.code,
				Name:     rec.name,
				RealTeam: rec.realTeam,
				Role:     role,
				Cost:     rec.cost,
			})
			report.Created++
		case !strings.EqualFold(stored.Name, rec.name) || !strings.EqualFold(stored.RealTeam, rec.realTeam):
			stored.Name = rec.name
			stored.RealTeam = rec.realTeam
			if err := imp.store.UpdatePlayer(stored); err != nil {
				report.Errors = append(report.Errors, LineError{Line: i + 1, Text: line, Err: err.Error()})
				continue
			}
			report.Updated++
		default:
			report.Unchanged++
		}

		if progress != nil {
			progress(i+1, len(lines))
		}
	}

	if err := imp.store.BulkCreatePlayers(toCreate); err != nil {
		return nil, fmt.Errorf("failed to commit players: %w", err)
	}

	imp.metrics.IncImportRuns()
	imp.metrics.AddLinesImported(report.Total)
	imp.metrics.ObserveImportDuration(time.Since(start).Seconds())
	log.Info("Players imported",
		"batch", report.BatchID,
		"created", report.Created,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"bad_lines", len(report.Errors),
	)
	return report, nil
}

// ImportEvaluations imports an evaluation file from disk; the matchday is
// taken from the filename.
func (imp *Importer) ImportEvaluations(path string, progress ProgressFunc) (*Report, error) {
	day, err := DayFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open evaluation file: %w", err)
	}
	defer f.Close()
	return imp.ImportEvaluationsFrom(day, f, progress)
}

// ImportEvaluationsFrom replaces the given matchday with the evaluations read
// from r. An existing day is deleted first, so re-importing the same file is
// idempotent. Lines referencing an unknown player create that player with
// the role derived from its code. All evaluations commit as one bulk insert.
func (imp *Importer) ImportEvaluationsFrom(day int, r io.Reader, progress ProgressFunc) (*Report, error) {
	if day <= 0 {
		return nil, fmt.Errorf("%w: day must be positive, got %d", league.ErrInvalidArgument, day)
	}
	start := time.Now()
	report := &Report{BatchID: uuid.NewString(), Day: day}

	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read evaluation file: %w", err)
	}
	report.Total = len(lines)
	log.Info("Importing evaluations", "batch", report.BatchID, "day", day, "lines", len(lines))

	last, err := imp.store.GetLastImportedDay()
	if err != nil {
		log.Debug("Could not determine last imported day", "error", err)
	} else if day > last+1 {
		log.Warn("Gap in imported matchdays", "day", day, "last_imported", last)
	}

	existing, err := imp.store.GetEvaluations(day, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check existing evaluations: %w", err)
	}
	if len(existing) > 0 {
		if err := imp.store.DeleteEvaluationsForDay(day); err != nil {
			return nil, err
		}
	}

	var toCreate []league.Evaluation
	seen := make(map[int]bool)
	for i, line := range lines {
		rec, err := parseLine(line)
		if err != nil {
			log.Warn("Skipping bad evaluation line", "line", i+1, "day", day, "error", err)
			report.Errors = append(report.Errors, LineError{Line: i + 1, Text: line, Err: err.Error()})
			continue
		}
		if seen[rec.code] {
			report.Errors = append(report.Errors, LineError{
				Line: i + 1,
				Text: line,
				Err:  fmt.Sprintf("duplicate evaluation for player %d on day %d", rec.code, day),
			})
			continue
		}
		seen[rec.code] = true

		player, err := imp.store.GetPlayerByCode(rec.code)
		if err != nil {
			return nil, err
		}
		if player == nil {
			role, err := league.RoleFromCode(rec.code)
			if err != nil {
				report.Errors = append(report.Errors, LineError{Line: i + 1, Text: line, Err: err.Error()})
				continue
			}
			if err := imp.store.CreatePlayer(league.Player{
				Code:     rec.code,
				Name:     rec.name,
				RealTeam: rec.realTeam,
				Role:     role,
				Cost:     rec.cost,
			}); err != nil {
				return nil, err
			}
			report.Created++
		}

		toCreate = append(toCreate, league.Evaluation{
			PlayerCode: rec.code,
			Day:        day,
			Vote:       rec.vote,
			FantaVote:  rec.fantaVote,
			Cost:       rec.cost,
		})

		if progress != nil {
			progress(i+1, len(lines))
		}
	}

	if err := imp.store.BulkCreateEvaluations(toCreate); err != nil {
		return nil, fmt.Errorf("failed to commit evaluations: %w", err)
	}

	imp.metrics.IncImportRuns()
	imp.metrics.AddLinesImported(report.Total)
	imp.metrics.ObserveImportDuration(time.Since(start).Seconds())
	log.Info("Evaluations imported",
		"batch", report.BatchID,
		"day", day,
		"evaluations", len(toCreate),
		"new_players", report.Created,
		"bad_lines", len(report.Errors),
	)
	return report, nil
}
