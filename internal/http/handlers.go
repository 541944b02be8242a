package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/magiccup/fantastat/internal/importer"
	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/stats"
	"github.com/vmihailenco/msgpack/v5"
)

// playerView pairs a stored player with its computed statistics.
type playerView struct {
	league.Player
	Stats stats.PlayerAverages `json:"stats"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, league.ErrInvalidArgument), errors.Is(err, importer.ErrMissingDayNumber):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, league.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error("Request failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func roleQuery(r *http.Request) (league.Role, error) {
	raw := r.URL.Query().Get("role")
	if raw == "" {
		return "", nil
	}
	return league.ParseRole(raw)
}

func intQuery(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %q parameter", league.ErrInvalidArgument, key)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", league.ErrInvalidArgument, key)
	}
	return n, nil
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ListPlayersHandler returns players with their statistics, optionally
// filtered by role and ranked by any stored or derived column.
func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := roleQuery(r)
		if err != nil {
			writeError(w, err)
			return
		}
		column := stats.PlayerColumn(r.URL.Query().Get("sort"))
		if column == "" {
			column = stats.PlayerByCode
		}

		players, err := s.Engine.SortedPlayers(role, column)
		if err != nil {
			writeError(w, err)
			return
		}
		summary, err := s.Engine.Compute(nil)
		if err != nil {
			writeError(w, err)
			return
		}

		views := make([]playerView, 0, len(players))
		for _, p := range players {
			views = append(views, playerView{Player: p, Stats: summary[p.Code]})
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p league.Player
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if p.Role == "" {
			role, err := league.RoleFromCode(p.Code)
			if err != nil {
				writeError(w, err)
				return
			}
			p.Role = role
		} else if _, err := league.ParseRole(string(p.Role)); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Store.CreatePlayer(p); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p league.Player
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if _, err := league.ParseRole(string(p.Role)); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Store.UpdatePlayer(p); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := intQuery(r, "code")
		if err != nil {
			writeError(w, err)
			return
		}
		// Evaluations go with the player, the store cascades.
		if err := s.Store.DeletePlayer(code); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListEvaluationsHandler returns one matchday's evaluations, optionally
// filtered by role and ordered by the requested column.
func (s *Server) ListEvaluationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := intQuery(r, "day")
		if err != nil {
			writeError(w, err)
			return
		}
		role, err := roleQuery(r)
		if err != nil {
			writeError(w, err)
			return
		}
		column := stats.EvaluationColumn(r.URL.Query().Get("sort"))
		if column == "" {
			column = stats.EvaluationByPlayerCode
		}

		evs, err := s.Engine.SortedEvaluations(day, role, column)
		if err != nil {
			writeError(w, err)
			return
		}
		if evs == nil {
			evs = []league.Evaluation{}
		}
		writeJSON(w, http.StatusOK, evs)
	}
}

func (s *Server) CreateEvaluationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev league.Evaluation
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		player, err := s.Store.GetPlayerByCode(ev.PlayerCode)
		if err != nil {
			writeError(w, err)
			return
		}
		if player == nil {
			writeError(w, fmt.Errorf("%w: player %d must be created first", league.ErrNotFound, ev.PlayerCode))
			return
		}
		if err := s.Store.CreateEvaluation(ev); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ev)
	}
}

func (s *Server) UpdateEvaluationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev league.Evaluation
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if err := s.Store.UpdateEvaluation(ev.PlayerCode, ev.Day, ev.FantaVote, ev.Vote, ev.Cost); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ev)
	}
}

func (s *Server) DeleteEvaluationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := intQuery(r, "code")
		if err != nil {
			writeError(w, err)
			return
		}
		day, err := intQuery(r, "day")
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Store.DeleteEvaluation(code, day); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) DaysHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := s.Store.GetDays()
		if err != nil {
			writeError(w, err)
			return
		}
		if days == nil {
			days = []int{}
		}
		writeJSON(w, http.StatusOK, days)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := s.Engine.Compute(nil)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

// ReportHandler serves the HTML report. With save=true the report is also
// written to the configured report path on the server's disk.
func (s *Server) ReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("save") == "true" {
			if err := s.Report.WriteFile(s.Cfg.ReportPath); err != nil {
				writeError(w, err)
				return
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.Report.Build(w); err != nil {
			log.Error("Failed to build report", "error", err)
		}
	}
}

func (s *Server) ImportPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		report, err := s.Importer.ImportPlayersFrom(r.Body, nil)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Notifier.SendImportSummary(report, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send import summary", "error", err)
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// ImportEvaluationsHandler imports one matchday. The day comes from the
// uploaded file's name ("file" query parameter), e.g. MCC12.txt -> day 12.
func (s *Server) ImportEvaluationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		filename := r.URL.Query().Get("file")
		if filename == "" {
			writeError(w, fmt.Errorf("%w: missing \"file\" parameter", league.ErrInvalidArgument))
			return
		}
		day, err := importer.DayFromPath(filename)
		if err != nil {
			writeError(w, err)
			return
		}

		report, err := s.Importer.ImportEvaluationsFrom(day, r.Body, nil)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Notifier.SendImportSummary(report, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send import summary", "error", err)
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// ClearStoreHandler deletes one matchday when "day" is given, otherwise the
// whole league.
func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dayStr := r.URL.Query().Get("day"); dayStr != "" {
			day, err := intQuery(r, "day")
			if err != nil {
				writeError(w, err)
				return
			}
			log.Info("Received request to clear a matchday", "day", day)
			if err := s.Store.DeleteEvaluationsForDay(day); err != nil {
				writeError(w, err)
				return
			}
			fmt.Fprintf(w, "Cleared evaluations for day %d!", day)
			return
		}

		count, err := s.Store.CountPlayers()
		if err != nil {
			writeError(w, err)
			return
		}
		log.Info("Received request to clear entire store", "players", count)
		if err := s.Store.DeleteAllEvaluations(); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Store.DeleteAllPlayers(); err != nil {
			writeError(w, err)
			return
		}
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.Store.ExportSnapshot()
		if err != nil {
			writeError(w, err)
			return
		}
		payload, err := msgpack.Marshal(snap)
		if err != nil {
			writeError(w, fmt.Errorf("failed to encode snapshot: %w", err))
			return
		}
		w.Header().Set("Content-Type", "application/x-msgpack")
		w.Header().Set("Content-Disposition", `attachment; filename="league.snapshot"`)
		if _, err := w.Write(payload); err != nil {
			log.Error("Failed to write snapshot", "error", err)
		}
	}
}

func (s *Server) RestoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		var snap league.Snapshot
		if err := msgpack.Unmarshal(payload, &snap); err != nil {
			http.Error(w, "invalid snapshot payload", http.StatusBadRequest)
			return
		}
		if err := s.Store.RestoreSnapshot(&snap); err != nil {
			writeError(w, err)
			return
		}
		fmt.Fprintf(w, "Restored %d players and %d evaluations!", len(snap.Players), len(snap.Evaluations))
	}
}

// NotifyLeaderboardHandler posts the current leaderboard, ranked by
// participation rate, to the configured notifier.
func (s *Server) NotifyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := roleQuery(r)
		if err != nil {
			writeError(w, err)
			return
		}
		players, err := s.Engine.SortedPlayers(role, stats.PlayerByRate)
		if err != nil {
			writeError(w, err)
			return
		}
		summary, err := s.Engine.Compute(nil)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.Notifier.SendLeaderboard(players, summary, isDryRunFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		fmt.Fprint(w, "Leaderboard sent!")
	}
}
